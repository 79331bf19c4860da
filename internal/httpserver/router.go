package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/basciYusuf/e-commerce/internal/jwtmiddleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/auth/login", d.AuthHandler.Login)

	products := e.Group("/products")
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.Search)
	}
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	protected := products.Group("", jwtmiddleware.JWTMiddleware(d.JWTSecret))
	protected.POST("", d.CatalogHandler.CreateProduct)
	protected.PUT("/:id", d.CatalogHandler.UpdateProduct)
	protected.DELETE("/:id", d.CatalogHandler.DeleteProduct)
}
