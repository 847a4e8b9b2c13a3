package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderfront/internal/cart"
	"orderfront/internal/domain"
)

// StoreRepo resolves tenants by URL key.
type StoreRepo interface {
	GetByKey(ctx context.Context, key string) (*domain.Store, error)
}

// ProductRepo serves the read-only catalog.
type ProductRepo interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.ProductDefinition, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.ProductDefinition, error)
}

// FulfillmentRepo serves methods, weekly windows and closures.
type FulfillmentRepo interface {
	ListMethods(ctx context.Context, storeID string) ([]domain.FulfillmentMethod, error)
	GetMethod(ctx context.Context, storeID string, methodType domain.MethodType) (*domain.FulfillmentMethod, error)
	ListWindows(ctx context.Context, storeID string) ([]domain.TimeWindow, error)
	ListClosures(ctx context.Context, storeID string) ([]domain.Closure, error)
}

// PromotionRepo resolves coupon and voucher codes.
type PromotionRepo interface {
	GetCoupon(ctx context.Context, storeID, code string) (*domain.Coupon, error)
	GetVoucher(ctx context.Context, storeID, code string) (*domain.Voucher, error)
}

// Deps carries everything the routes need. CartStorage binds a session to
// its durable cart backend; when nil, carts live in process memory only.
type Deps struct {
	StoreRepo       StoreRepo
	ProductRepo     ProductRepo
	FulfillmentRepo FulfillmentRepo
	PromotionRepo   PromotionRepo
	CartStorage     func(storeID, sessionID string) cart.Storage
	CORSOrigins     []string
	HorizonDays     int
}

type storeCtxKeyType struct{}

var storeCtxKey = storeCtxKeyType{}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.StoreRepo == nil {
		return nil, errors.New("store repository required")
	}
	if deps.HorizonDays <= 0 {
		deps.HorizonDays = 14
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(deps.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = deps.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{
		deps:     deps,
		logger:   logger,
		sessions: newSessionRegistry(deps.CartStorage, logger),
		flows:    newFlowRegistry(),
	}

	api := router.Group("/stores/:storeKey")
	api.Use(storeMiddleware(deps.StoreRepo))
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:productID", h.getProduct)
		api.GET("/fulfillment", h.listMethods)
		api.GET("/availability/dates", h.availableDates)
		api.GET("/availability/slots", h.availableSlots)

		api.GET("/cart", h.getCart)
		api.POST("/cart/items", h.addCartItem)
		api.PATCH("/cart/items/:signature", h.updateCartItem)
		api.DELETE("/cart/items/:signature", h.removeCartItem)
		api.DELETE("/cart", h.clearCart)

		api.POST("/flows", h.startFlow)
		api.GET("/flows/:flowID", h.getFlow)
		api.POST("/flows/:flowID/select", h.flowSelect)
		api.POST("/flows/:flowID/next", h.flowNext)
		api.POST("/flows/:flowID/back", h.flowBack)
		api.DELETE("/flows/:flowID", h.cancelFlow)

		api.POST("/checkout/quote", h.checkoutQuote)
		api.POST("/checkout/validate", h.checkoutValidate)
	}

	return router, nil
}

// storeMiddleware resolves :storeKey and stashes the tenant in the request
// context.
func storeMiddleware(repo StoreRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("storeKey")
		if key == "" {
			respondError(c, http.StatusBadRequest, "store key required")
			c.Abort()
			return
		}
		st, err := repo.GetByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(c, http.StatusNotFound, "store not found")
			} else {
				respondError(c, http.StatusInternalServerError, "store lookup failed")
			}
			c.Abort()
			return
		}
		ctx := context.WithValue(c.Request.Context(), storeCtxKey, st)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func currentStore(c *gin.Context) *domain.Store {
	st, _ := c.Request.Context().Value(storeCtxKey).(*domain.Store)
	return st
}
