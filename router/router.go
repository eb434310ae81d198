package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/controllers"
	"github.com/nicholasph05/myc-restaurant-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Middleware must be attached before the route groups register; gin
	// snapshots each route's handler chain at registration time.
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 10).RateLimit())

	customerCtrl := controllers.NewCustomerController(db)
	tableCtrl := controllers.NewTableController(db)
	dishCtrl := controllers.NewDishController(db)
	reservationCtrl := controllers.NewReservationController(db)
	orderCtrl := controllers.NewOrderController(db)
	reviewCtrl := controllers.NewReviewController(db)
	preferenceCtrl := controllers.NewPreferenceController(db)
	recommendationCtrl := controllers.NewRecommendationController(db)
	historyCtrl := controllers.NewHistoryController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		customers := api.Group("/customers")
		{
			customers.GET("", customerCtrl.GetAllCustomers)
			customers.GET("/:customer_id", customerCtrl.GetCustomerByID)
			customers.POST("", customerCtrl.CreateCustomer)
			customers.PUT("/:customer_id", customerCtrl.UpdateCustomer)
			customers.DELETE("/:customer_id", customerCtrl.DeleteCustomer)
		}

		tables := api.Group("/tables")
		{
			tables.GET("", tableCtrl.GetAllTables)
			tables.GET("/:table_id", tableCtrl.GetTableByID)
			tables.POST("", tableCtrl.CreateTable)
			tables.PUT("/:table_id", tableCtrl.UpdateTable)
			tables.DELETE("/:table_id", tableCtrl.DeleteTable)
		}

		dishes := api.Group("/dishes")
		{
			dishes.GET("", dishCtrl.GetAllDishes)
			dishes.GET("/:dish_id", dishCtrl.GetDishByID)
			dishes.POST("", dishCtrl.CreateDish)
			dishes.PUT("/:dish_id", dishCtrl.UpdateDish)
			dishes.DELETE("/:dish_id", dishCtrl.DeleteDish)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", reservationCtrl.GetAllReservations)
			reservations.GET("/:reservation_id", reservationCtrl.GetReservationByID)
			reservations.POST("", reservationCtrl.CreateReservation)
			reservations.PUT("/:reservation_id", reservationCtrl.UpdateReservation)
			reservations.DELETE("/:reservation_id", reservationCtrl.DeleteReservation)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderCtrl.GetAllOrders)
			orders.GET("/:order_id", orderCtrl.GetOrderByID)
			orders.POST("", orderCtrl.CreateOrder)
			orders.PUT("/:order_id", orderCtrl.UpdateOrder)
			orders.DELETE("/:order_id", orderCtrl.DeleteOrder)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", reviewCtrl.GetAllReviews)
			reviews.GET("/:review_id", reviewCtrl.GetReviewByID)
			reviews.POST("", reviewCtrl.CreateReview)
			reviews.PUT("/:review_id", reviewCtrl.UpdateReview)
			reviews.DELETE("/:review_id", reviewCtrl.DeleteReview)
		}

		preferences := api.Group("/preferences")
		{
			preferences.GET("", preferenceCtrl.GetPreferences)
			preferences.POST("", preferenceCtrl.UpsertPreference)
		}

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/:customer_id", recommendationCtrl.GetRecommendation)
			recommendations.POST("", recommendationCtrl.UpsertRecommendation)
			recommendations.POST("/:customer_id/generate", recommendationCtrl.GenerateRecommendation)
			recommendations.DELETE("/:customer_id", recommendationCtrl.DeleteRecommendation)
		}

		history := api.Group("/history")
		{
			history.GET("/:customer_id", historyCtrl.GetCustomerHistory)
			history.POST("", historyCtrl.CreateHistoryEntry)
		}
	}

	return r
}
