package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"kantinho-pos/internal/checkout"
	"kantinho-pos/internal/domain"
	orderrepo "kantinho-pos/internal/repository/order"
	menusvc "kantinho-pos/internal/service/menu"
	salessvc "kantinho-pos/internal/service/sales"
	tillsvc "kantinho-pos/internal/service/till"
	usersvc "kantinho-pos/internal/service/user"
)

// UserService is the slice of the user service the router needs.
type UserService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, phone, address string) (*domain.User, error)
	RedeemPoints(ctx context.Context, userID string, points int) (int, error)
}

// MenuService is the catalog surface exposed over HTTP.
type MenuService interface {
	List(ctx context.Context, kind domain.ItemKind) ([]domain.MenuItem, error)
	ListActive(ctx context.Context, kind domain.ItemKind) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, kind domain.ItemKind, in menusvc.ItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, in menusvc.ItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

// TillService is the cart, half-and-half and checkout surface of the till.
type TillService interface {
	Cart(variant checkout.Variant) tillsvc.View
	AddMenuItem(ctx context.Context, menuItemID string, size domain.Size) (tillsvc.View, error)
	AddExtra(ctx context.Context, parentLineID, extraMenuItemID string) (tillsvc.View, error)
	UpdateQuantity(lineID string, quantity int) tillsvc.View
	RemoveLine(lineID string) tillsvc.View
	ClearCart() tillsvc.View
	StartHalfAndHalf(size domain.Size) (tillsvc.HalfFlowView, error)
	ChooseHalf(ctx context.Context, menuItemID string) (tillsvc.HalfFlowView, error)
	BackHalf() tillsvc.HalfFlowView
	CancelHalf() tillsvc.HalfFlowView
	ConfirmHalf() (tillsvc.View, error)
	HalfFlow() tillsvc.HalfFlowView
	Checkout(ctx context.Context, userID string, meta checkout.CustomerMeta, variant checkout.Variant) (*domain.Order, int, error)
}

// OrderService reads and re-statuses orders on the ledger.
type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// SalesService answers the dashboard queries.
type SalesService interface {
	Daily(ctx context.Context) ([]orderrepo.DailyTotal, error)
	Weekly(ctx context.Context) ([]salessvc.WeekdayTotal, error)
	Monthly(ctx context.Context) ([]salessvc.MonthTotal, error)
	TopItems(ctx context.Context) ([]orderrepo.ItemCount, error)
	Summarize(ctx context.Context) (salessvc.Summary, error)
}

// Deps carries the services the router exposes.
type Deps struct {
	Users  UserService
	Menu   MenuService
	Till   TillService
	Orders OrderService
	Sales  SalesService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Users == nil || deps.Menu == nil || deps.Till == nil || deps.Orders == nil || deps.Sales == nil {
		return nil, errors.New("httpserver: all services must be set")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := router.Group("/auth")
	{
		auth.POST("/register", registerHandler(deps.Users))
		auth.POST("/login", loginHandler(deps.Users))
		auth.POST("/logout", logoutHandler(deps.Users))
	}

	me := router.Group("/me", authRequired(deps.Users))
	{
		me.GET("", meHandler())
		me.PUT("/profile", updateProfileHandler(deps.Users))
		me.POST("/points/redeem", redeemPointsHandler(deps.Users))
	}

	router.GET("/menu/:kind", listMenuHandler(deps.Menu))

	till := router.Group("/till")
	{
		till.GET("/cart", cartHandler(deps.Till))
		till.POST("/cart/items", addItemHandler(deps.Till))
		till.POST("/cart/items/:lineID/extras", addExtraHandler(deps.Till))
		till.PATCH("/cart/items/:lineID", updateQuantityHandler(deps.Till))
		till.DELETE("/cart/items/:lineID", removeLineHandler(deps.Till))
		till.DELETE("/cart", clearCartHandler(deps.Till))

		till.GET("/half", halfFlowHandler(deps.Till))
		till.POST("/half/start", startHalfHandler(deps.Till))
		till.POST("/half/choose", chooseHalfHandler(deps.Till))
		till.POST("/half/back", backHalfHandler(deps.Till))
		till.POST("/half/cancel", cancelHalfHandler(deps.Till))
		till.POST("/half/confirm", confirmHalfHandler(deps.Till))

		till.POST("/checkout", checkoutHandler(deps.Till))
	}

	admin := router.Group("/admin", authRequired(deps.Users), adminRequired())
	{
		admin.GET("/menu/:kind", adminListMenuHandler(deps.Menu))
		admin.POST("/menu/:kind", createMenuItemHandler(deps.Menu))
		admin.PUT("/menu/:kind/:id", updateMenuItemHandler(deps.Menu))
		admin.DELETE("/menu/:kind/:id", deleteMenuItemHandler(deps.Menu))

		admin.GET("/orders", listOrdersHandler(deps.Orders))
		admin.GET("/orders/:id", getOrderHandler(deps.Orders))
		admin.PATCH("/orders/:id/status", setOrderStatusHandler(deps.Orders))

		admin.GET("/dashboard/daily", dailySalesHandler(deps.Sales))
		admin.GET("/dashboard/weekly", weeklySalesHandler(deps.Sales))
		admin.GET("/dashboard/monthly", monthlySalesHandler(deps.Sales))
		admin.GET("/dashboard/top-items", topItemsHandler(deps.Sales))
		admin.GET("/dashboard/summary", summaryHandler(deps.Sales))
	}

	return router, nil
}
