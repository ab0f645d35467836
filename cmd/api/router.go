package main

import (
	"github.com/gin-gonic/gin"

	"github.com/jeffbulltech/cosmere-api/internal/shared/middleware"
	"github.com/jeffbulltech/cosmere-api/pkg/container"
)

func SetupRouter(app *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(app.Config.CORS.Origins))
	if app.Config.RateLimit.Enabled && app.Cache != nil {
		router.Use(middleware.RateLimit(app.Cache, app.Config.RateLimit.PerMinute))
	}

	v1 := router.Group("/api/v1")

	setupHealthRoutes(v1, app)
	setupWorldRoutes(v1, app)
	setupSeriesRoutes(v1, app)
	setupBookRoutes(v1, app)
	setupCharacterRoutes(v1, app)
	setupMagicSystemRoutes(v1, app)
	setupShardRoutes(v1, app)
	setupSearchRoutes(v1, app)

	return router
}

func setupWorldRoutes(rg *gin.RouterGroup, app *container.Container) {
	worlds := rg.Group("/worlds")
	{
		worlds.GET("", app.WorldHandler.List)
		worlds.GET("/overview", app.WorldHandler.GetOverview)
		worlds.GET("/name/:name", app.WorldHandler.GetByName)
		worlds.GET("/:id", app.WorldHandler.GetByID)
		worlds.POST("", app.WorldHandler.Create)
		worlds.PUT("/:id", app.WorldHandler.Update)
		worlds.DELETE("/:id", app.WorldHandler.Delete)

		// Cross-entity reads, served by the owning entity's handler.
		worlds.GET("/:id/books", app.BookHandler.ListByWorld)
		worlds.GET("/:id/characters", app.CharacterHandler.ListByWorld)
		worlds.GET("/:id/series", app.SeriesHandler.ListByWorld)
		worlds.GET("/:id/magic-systems", app.MagicSystemHandler.ListByWorld)
	}
}

func setupSeriesRoutes(rg *gin.RouterGroup, app *container.Container) {
	series := rg.Group("/series")
	{
		series.GET("", app.SeriesHandler.List)
		series.GET("/name/:name", app.SeriesHandler.GetByName)
		series.GET("/:id", app.SeriesHandler.GetByID)
		series.POST("", app.SeriesHandler.Create)
		series.PUT("/:id", app.SeriesHandler.Update)
		series.DELETE("/:id", app.SeriesHandler.Delete)

		series.GET("/:id/books", app.BookHandler.ListBySeries)
	}
}

func setupBookRoutes(rg *gin.RouterGroup, app *container.Container) {
	books := rg.Group("/books")
	{
		books.GET("", app.BookHandler.List)
		books.GET("/overview", app.BookHandler.GetOverview)
		books.GET("/standalone", app.BookHandler.ListStandalone)
		books.GET("/title/:title", app.BookHandler.GetByTitle)
		books.GET("/:id", app.BookHandler.GetByID)
		books.POST("", app.BookHandler.Create)
		books.PUT("/:id", app.BookHandler.Update)
		books.DELETE("/:id", app.BookHandler.Delete)

		books.GET("/:id/characters", app.BookHandler.ListCharacters)
		books.POST("/:id/characters", app.BookHandler.AddCharacter)
		books.PUT("/:id/characters/:character_id", app.BookHandler.UpdateCharacter)
		books.DELETE("/:id/characters/:character_id", app.BookHandler.RemoveCharacter)
	}
}

func setupCharacterRoutes(rg *gin.RouterGroup, app *container.Container) {
	characters := rg.Group("/characters")
	{
		characters.GET("", app.CharacterHandler.List)
		characters.GET("/overview", app.CharacterHandler.GetOverview)
		characters.GET("/name/:name", app.CharacterHandler.GetByName)
		characters.GET("/:id", app.CharacterHandler.GetByID)
		characters.POST("", app.CharacterHandler.Create)
		characters.PUT("/:id", app.CharacterHandler.Update)
		characters.DELETE("/:id", app.CharacterHandler.Delete)

		characters.GET("/:id/books", app.BookHandler.ListByCharacter)

		characters.GET("/:id/relationships", app.CharacterHandler.ListRelationships)
		characters.POST("/:id/relationships", app.CharacterHandler.CreateRelationship)
		characters.PUT("/:id/relationships/:relationship_id", app.CharacterHandler.UpdateRelationship)
		characters.DELETE("/:id/relationships/:relationship_id", app.CharacterHandler.DeleteRelationship)

		characters.GET("/:id/magic-systems", app.CharacterHandler.ListMagicSystems)
		characters.POST("/:id/magic-systems", app.CharacterHandler.CreateMagicSystem)
		characters.PUT("/:id/magic-systems/:magic_system_id", app.CharacterHandler.UpdateMagicSystem)
		characters.DELETE("/:id/magic-systems/:magic_system_id", app.CharacterHandler.DeleteMagicSystem)
	}
}

func setupMagicSystemRoutes(rg *gin.RouterGroup, app *container.Container) {
	systems := rg.Group("/magic-systems")
	{
		systems.GET("", app.MagicSystemHandler.List)
		systems.GET("/name/:name", app.MagicSystemHandler.GetByName)
		systems.GET("/:id", app.MagicSystemHandler.GetByID)
		systems.POST("", app.MagicSystemHandler.Create)
		systems.PUT("/:id", app.MagicSystemHandler.Update)
		systems.DELETE("/:id", app.MagicSystemHandler.Delete)

		systems.GET("/:id/users", app.CharacterHandler.UsersOfMagicSystem)
	}
}

func setupShardRoutes(rg *gin.RouterGroup, app *container.Container) {
	shards := rg.Group("/shards")
	{
		shards.GET("", app.ShardHandler.List)
		shards.GET("/overview", app.ShardHandler.GetOverview)
		shards.GET("/name/:name", app.ShardHandler.GetByName)
		shards.GET("/vessel/:name", app.ShardHandler.ByVessel)
		shards.GET("/:id", app.ShardHandler.GetByID)
		shards.POST("", app.ShardHandler.Create)
		shards.PUT("/:id", app.ShardHandler.Update)
		shards.DELETE("/:id", app.ShardHandler.Delete)

		shards.GET("/:id/worlds", app.ShardHandler.WorldsOf)
		shards.GET("/:id/vessels", app.ShardHandler.ListVessels)
		shards.POST("/:id/vessels", app.ShardHandler.CreateVessel)
		shards.PUT("/:id/vessels/:vessel_id", app.ShardHandler.UpdateVessel)
		shards.DELETE("/:id/vessels/:vessel_id", app.ShardHandler.DeleteVessel)
	}
}

func setupSearchRoutes(rg *gin.RouterGroup, app *container.Container) {
	search := rg.Group("/search")
	{
		search.GET("", app.SearchHandler.Search)
		search.GET("/global", app.SearchHandler.Global)
		search.GET("/suggestions", app.SearchHandler.Suggestions)
		search.POST("/advanced", app.SearchHandler.Advanced)
		search.GET("/:type", app.SearchHandler.SearchType)
	}
}
