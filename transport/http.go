package transport

import (
	"context"
	"encoding/json"
	"net/http"

	orderapp "github.com/cocomo/secondhand-market/application/order"
	productapp "github.com/cocomo/secondhand-market/application/product"
	userapp "github.com/cocomo/secondhand-market/application/user"
	"github.com/cocomo/secondhand-market/constant"
	"github.com/cocomo/secondhand-market/model"
	utilsContext "github.com/cocomo/secondhand-market/utils/context"
	"github.com/cocomo/secondhand-market/utils/errors"
	validatorx "github.com/cocomo/secondhand-market/utils/validator"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ProductApp productapp.ProductApp
	OrderApp   orderapp.OrderApp
}

func NewTransport(UserApp userapp.UserApp, ProductApp productapp.ProductApp, OrderApp orderapp.OrderApp, internalAPIKey string) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    UserApp,
		ProductApp: ProductApp,
		OrderApp:   OrderApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// Protected routes
	mux.HandleFunc("/product", rh.CreateProduct).Methods(http.MethodPost)
	mux.HandleFunc("/order", rh.RequestOrder).Methods(http.MethodPost)
	mux.HandleFunc("/order/{orderNum}/approve", rh.ApproveOrder).Methods(http.MethodPost)
	mux.HandleFunc("/order/{orderNum}/reject", rh.RejectOrder).Methods(http.MethodPost)
	mux.HandleFunc("/order/{orderNum}/cancel", rh.CancelOrder).Methods(http.MethodPost)
	mux.HandleFunc("/order/{orderNum}/cancel/approve", rh.ApproveCancel).Methods(http.MethodPost)
	mux.HandleFunc("/order/{orderNum}/cancel/reject", rh.RejectCancel).Methods(http.MethodPost)
	mux.HandleFunc("/order/{orderNum}/confirm", rh.ConfirmOrder).Methods(http.MethodPost)
	mux.HandleFunc("/order/{orderNum}/report", rh.ReportOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders", rh.GetMyOrders).Methods(http.MethodGet)

	// Internal routes (API key, not JWT)
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/v1/sweep", rh.RunSweep).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(UserApp))

	return mux
}

// Register handler
// @Summary Register user
// @Description Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Register a product
// @Description Register a new product for sale, owned by the caller
// @Tags Product
// @Accept json
// @Produce json
// @Param request body model.ProductCreateRequest true "Product Create Request"
// @Success 200 {object} model.ProductCreateResponse
// @Failure 400 {object} errors.CustomError
// @Security BearerAuth
// @Router /product [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.ProductCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.UserID = userID

	res, err := s.ProductApp.CreateProduct(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RequestOrder handler
// @Summary Request an order
// @Description Request to buy an available product at a selected time
// @Tags Order
// @Accept json
// @Produce json
// @Param request body model.OrderRequest true "Order Request"
// @Success 200 {object} model.OrderResponse
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order [post]
func (s *RestHandler) RequestOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.RequestOrder(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApproveOrder handler
// @Summary Approve an order request
// @Tags Order
// @Produce json
// @Param orderNum path string true "Order number"
// @Success 200 {object} response
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order/{orderNum}/approve [post]
func (s *RestHandler) ApproveOrder(w http.ResponseWriter, r *http.Request) {
	s.handleOrderAction(w, r, s.OrderApp.ApproveOrder)
}

// RejectOrder handler
// @Summary Reject an order request
// @Tags Order
// @Produce json
// @Param orderNum path string true "Order number"
// @Success 200 {object} response
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order/{orderNum}/reject [post]
func (s *RestHandler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	s.handleOrderAction(w, r, s.OrderApp.RejectOrder)
}

// CancelOrder handler
// @Summary Cancel an order, or request cancellation after payment
// @Tags Order
// @Produce json
// @Param orderNum path string true "Order number"
// @Success 200 {object} response
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order/{orderNum}/cancel [post]
func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	s.handleOrderAction(w, r, s.OrderApp.CancelOrder)
}

// ApproveCancel handler
// @Summary Approve a cancellation request
// @Tags Order
// @Produce json
// @Param orderNum path string true "Order number"
// @Success 200 {object} response
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order/{orderNum}/cancel/approve [post]
func (s *RestHandler) ApproveCancel(w http.ResponseWriter, r *http.Request) {
	s.handleOrderAction(w, r, s.OrderApp.ApproveCancel)
}

// RejectCancel handler
// @Summary Reject a cancellation request
// @Tags Order
// @Produce json
// @Param orderNum path string true "Order number"
// @Success 200 {object} response
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order/{orderNum}/cancel/reject [post]
func (s *RestHandler) RejectCancel(w http.ResponseWriter, r *http.Request) {
	s.handleOrderAction(w, r, s.OrderApp.RejectCancel)
}

// ConfirmOrder handler
// @Summary Confirm the transaction
// @Tags Order
// @Produce json
// @Param orderNum path string true "Order number"
// @Success 200 {object} response
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order/{orderNum}/confirm [post]
func (s *RestHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	s.handleOrderAction(w, r, s.OrderApp.ConfirmOrder)
}

// ReportOrder handler
// @Summary Report a completed transaction
// @Tags Order
// @Produce json
// @Param orderNum path string true "Order number"
// @Success 200 {object} response
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /order/{orderNum}/report [post]
func (s *RestHandler) ReportOrder(w http.ResponseWriter, r *http.Request) {
	s.handleOrderAction(w, r, s.OrderApp.ReportOrder)
}

// GetMyOrders handler
// @Summary List my orders
// @Description List orders where the caller is buyer or seller
// @Tags Order
// @Produce json
// @Success 200 {array} model.OrderSummary
// @Security BearerAuth
// @Router /orders [get]
func (s *RestHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.OrderApp.GetMyOrders(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RunSweep handler
// @Summary Run the deadline sweep now
// @Description Trigger the reminder and auto-confirm scans
// @Tags Internal
// @Produce json
// @Success 200 {object} response
// @Router /internal/v1/sweep [post]
func (s *RestHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	if err := s.OrderApp.ProcessDeadlines(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

func (s *RestHandler) handleOrderAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userID uint64, orderNum string) error) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderNum := mux.Vars(r)["orderNum"]
	if orderNum == "" {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := action(ctx, userID, orderNum); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
