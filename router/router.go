package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/config"
	"github.com/pdvapp/restaurant-pos/controllers"
	"github.com/pdvapp/restaurant-pos/middlewares"
	"github.com/pdvapp/restaurant-pos/services"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())

	printer := services.NewPrinterService(cfg.PrinterURL)
	notifier := services.NewNotifier()
	orderSvc := services.NewOrderService(db, printer)
	sessionSvc := services.NewSessionService(db)
	deliverySvc := services.NewDeliveryService(db)

	authCtrl := controllers.NewAuthController(db)
	productCtrl := controllers.NewProductController(db)
	optionCtrl := controllers.NewOptionController(db)
	catalogCtrl := controllers.NewCatalogController(db)
	orderCtrl := controllers.NewOrderController(db, orderSvc, notifier, cfg)
	sessionCtrl := controllers.NewTableSessionController(db, sessionSvc, orderSvc)
	deliveryCtrl := controllers.NewDeliveryController(db, deliverySvc)

	r.POST("/auth/login", authCtrl.Login)

	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.LiveHandler)

	tenant := r.Group("/tenant", middlewares.AuthMiddleware())
	{
		// catalog reads are open to every authenticated role
		tenant.GET("/products", productCtrl.GetAllProducts)
		tenant.GET("/products/:product_id/options", productCtrl.GetProductOptions)
		tenant.GET("/products/:product_id/addons", productCtrl.GetProductAddons)
		tenant.GET("/options", optionCtrl.GetAllOptions)
		tenant.GET("/categories", catalogCtrl.GetAllCategories)
		tenant.GET("/ingredients", catalogCtrl.GetAllIngredients)

		catalogWrite := tenant.Group("", middlewares.RequireCapability(config.CapCatalogWrite))
		{
			catalogWrite.POST("/products", productCtrl.CreateProduct)
			catalogWrite.PUT("/products/:product_id", productCtrl.UpdateProduct)
			catalogWrite.POST("/products/:product_id/addons/attach", productCtrl.AttachAddon)
			catalogWrite.POST("/options", optionCtrl.CreateOption)
			catalogWrite.PUT("/options/:option_id", optionCtrl.UpdateOption)
			catalogWrite.POST("/options/:option_id/values", optionCtrl.CreateOptionValue)
			catalogWrite.PUT("/options/:option_id/values/:value_id", optionCtrl.UpdateOptionValue)
			catalogWrite.POST("/categories", catalogCtrl.CreateCategory)
		}

		tenant.GET("/orders", orderCtrl.GetAllOrders)
		tenant.POST("/orders", middlewares.RequireCapability(config.CapOrderSubmit), orderCtrl.CreateOrder)
		tenant.PATCH("/orders/:order_id/status", middlewares.RequireCapability(config.CapOrderStatus), orderCtrl.UpdateOrderStatus)
		tenant.PATCH("/orders/:order_id/payment-status", middlewares.RequireCapability(config.CapOrderPayment), orderCtrl.UpdatePaymentStatus)
		tenant.PATCH("/orders/:order_id/finish", middlewares.RequireCapability(config.CapOrderFinish), orderCtrl.FinishOrder)

		tenant.GET("/table-session", sessionCtrl.GetOpenSessions)
		tenant.POST("/table-session/:session_id/order", middlewares.RequireCapability(config.CapOrderSubmit), sessionCtrl.AddOrderToSession)
		tenant.PATCH("/table-session/:session_id/close", middlewares.RequireCapability(config.CapSessionClose), sessionCtrl.CloseSession)

		tenant.GET("/orders/delivery/ready", deliveryCtrl.GetReadyOrders)
		tenant.PATCH("/orders/:order_id/collect-for-delivery", middlewares.RequireCapability(config.CapDeliveryCollect), deliveryCtrl.CollectOrder)
		tenant.PATCH("/orders/:order_id/mark-as-delivered", middlewares.RequireCapability(config.CapDeliveryFinish), deliveryCtrl.MarkDelivered)
		tenant.GET("/driver/deliveries", deliveryCtrl.GetDriverDeliveries)
		tenant.PATCH("/driver/deliveries/:order_id/finish-payment", middlewares.RequireCapability(config.CapDeliveryFinish), deliveryCtrl.FinishDeliveryPayment)
	}

	return r
}
