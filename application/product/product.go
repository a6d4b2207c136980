package product

import (
	"context"
	"strings"

	"github.com/cocomo/secondhand-market/constant"
	"github.com/cocomo/secondhand-market/model"
	productrepo "github.com/cocomo/secondhand-market/repository/product"
	"github.com/cocomo/secondhand-market/utils/errors"
	"github.com/cocomo/secondhand-market/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductApp interface {
	CreateProduct(ctx context.Context, req *model.ProductCreateRequest) (*model.ProductCreateResponse, error)
}

type productAppImpl struct {
	productRepo productrepo.ProductRepository
}

func NewProductApp(productRepo productrepo.ProductRepository) ProductApp {
	return &productAppImpl{productRepo: productRepo}
}

// generateProductNumber returns an opaque, collision-free product number.
func generateProductNumber() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.ProductCreateRequest) (*model.ProductCreateResponse, error) {
	product := &model.Product{
		PdNum:    generateProductNumber(),
		UserID:   req.UserID,
		Name:     req.Name,
		Image:    req.Image,
		Price:    req.Price,
		Detail:   req.Detail,
		Place:    req.Place,
		Category: req.Category,
		Status:   constant.ProductAvailable,
	}

	if _, err := s.productRepo.Insert(ctx, product); err != nil {
		logger.Error("[CreateProduct] insert product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProductCreateResponse{
		PdNum:  product.PdNum,
		Name:   product.Name,
		Status: product.Status,
	}, nil
}
