package main

import (
	"os"

	"github.com/devworkshq/devworks/auth"
	"github.com/devworkshq/devworks/feed"
	"github.com/devworkshq/devworks/github"
	"github.com/devworkshq/devworks/server"
	"github.com/devworkshq/devworks/store"
	"github.com/devworkshq/devworks/uploader"
	"github.com/devworkshq/devworks/utils"
	"github.com/devworkshq/devworks/utils/dotenv"
	. "github.com/devworkshq/devworks/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		Log.Fatal("SECRET_KEY must be set")
	}

	// The feed cache is best-effort: run without it if redis is unreachable.
	var feedCache *feed.Cache
	if os.Getenv("REDIS_HOST") != "" {
		feedCache, err = feed.NewCache()
		if err != nil {
			Log.Warn("redis unavailable, feed caching disabled: ", err)
			feedCache = nil
		}
	}

	images, err := uploader.NewS3ImageStore(
		os.Getenv("S3_IMAGE_BUCKET"),
		os.Getenv("S3_REGION"),
		os.Getenv("IMAGE_URL_PREFIX"),
	)
	if err != nil {
		Log.Fatal("fail to set up image store: ", err)
	}

	authManager := auth.NewManager(db, []byte(secret))
	social := store.NewSocialStore(db)
	srv := server.NewServer(
		authManager,
		store.NewContentStore(db),
		social,
		feed.NewComposer(db, social, feedCache),
		images,
		github.NewClient(),
	)

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	srv.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	Log.Info("api server starts up on port ", port)
	router.Run(":" + port)
}
