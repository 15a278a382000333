package main

import (
	"os"

	"github.com/chadtanner/churchs-turkey-app/routes"
	"github.com/chadtanner/churchs-turkey-app/storage"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the storefront and the admin dashboard
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	location := app.Party("/api/location")
	{
		location.Get("/", routes.GetLocations)
		location.Get("/{id}", routes.GetLocation)
		location.Get("/{id}/slots", routes.GetLocationSlots)
		location.Get("/{id}/reservations", routes.GetReservationsByLocation)
	}

	reservation := app.Party("/api/reservation")
	{
		reservation.Post("/", routes.CreateReservation)
		reservation.Get("/{confirmationId}", routes.GetReservationByConfirmation)
	}

	admin := app.Party("/api/admin")
	{
		admin.Get("/dashboard", routes.AdminDashboard)
		admin.Get("/locations/search", routes.AdminSearchLocations)
		admin.Patch("/locations/bulk", routes.AdminBulkUpdateLocations)
		admin.Patch("/locations/{id}", routes.AdminUpdateLocation)
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Post("/export", routes.AdminCreateExport)
		admin.Get("/export/{id:string}", routes.AdminGetExport)
		admin.Get("/export/{id:string}/download", routes.AdminDownloadExport)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}
