package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Sourasish01/MERN-ChatApp/config"
	mongoutil "github.com/Sourasish01/MERN-ChatApp/data/database/mgo/mongoutil"
	"github.com/Sourasish01/MERN-ChatApp/logger"
	"github.com/Sourasish01/MERN-ChatApp/middleware"
	midsec "github.com/Sourasish01/MERN-ChatApp/middleware/security"
	chathandler "github.com/Sourasish01/MERN-ChatApp/module/chat"
	chatservice "github.com/Sourasish01/MERN-ChatApp/module/chat/service"
	userhandler "github.com/Sourasish01/MERN-ChatApp/module/user"
	userservice "github.com/Sourasish01/MERN-ChatApp/module/user/service"
	"github.com/Sourasish01/MERN-ChatApp/service/chat"
	"github.com/Sourasish01/MERN-ChatApp/service/media"
	"github.com/Sourasish01/MERN-ChatApp/service/mgo"
	redisstore "github.com/Sourasish01/MERN-ChatApp/service/storage/redis"
	"github.com/Sourasish01/MERN-ChatApp/tools/ids"
	"github.com/Sourasish01/MERN-ChatApp/tools/security"
	"github.com/gin-gonic/gin"
)

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("load config: %v", err)
		return
	}
	ids.SetNodeID(cfg.NodeID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := mgo.Start(ctx, &mongoutil.Config{Uri: cfg.MongoURI, Database: cfg.MongoDB}); err != nil {
		logger.Errorf("connect mongo: %v", err)
		return
	}
	db, err := mgo.GetDB()
	if err != nil {
		logger.Errorf("mongo handle: %v", err)
		return
	}

	// Presence mirror is optional; without redis the app still runs.
	if cfg.RedisAddr != "" {
		if err := redisstore.InitRedis(ctx, redisstore.Config{
			Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB,
		}); err != nil {
			logger.Warnf("redis unavailable, presence mirror disabled: %v", err)
		}
	}

	users := userservice.NewStore(db)
	messages := chatservice.NewStore(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		logger.Warnf("user indexes: %v", err)
	}
	if err := messages.EnsureIndexes(ctx); err != nil {
		logger.Warnf("message indexes: %v", err)
	}

	uploader, err := media.NewDiskUploader(cfg.UploadDir, "/uploads")
	if err != nil {
		logger.Errorf("init uploader: %v", err)
		return
	}

	jwtOpts := security.DefaultOptions([]byte(cfg.JWTSecret))
	rt := chat.NewServer(chat.ServerConf{
		NodeID:      fmt.Sprintf("node_%d", cfg.NodeID),
		JWT:         jwtOpts,
		RequireAuth: cfg.WSRequireAuth,
	})

	userH := userhandler.NewHandler(users, jwtOpts, uploader, gin.Mode() == gin.ReleaseMode)
	chatH := chathandler.NewHandler(messages, rt, uploader)
	auth := midsec.Middleware(jwtOpts, users)

	r := gin.Default()
	r.Use(middleware.CORS(cfg.ClientOrigin))
	r.Static("/uploads", cfg.UploadDir)

	api := middleware.NewGroup(r.Group("/api"), auth)
	api.POST("/auth/signup", userH.Signup, middleware.RouteOpt{})
	api.POST("/auth/login", userH.Login, middleware.RouteOpt{})
	api.POST("/auth/logout", userH.Logout, middleware.RouteOpt{})
	api.PUT("/auth/update-profile", userH.UpdateProfile, middleware.RouteOpt{IsAuth: true})
	api.GET("/auth/check", userH.Check, middleware.RouteOpt{IsAuth: true})
	api.GET("/messages/users", userH.ListOthers, middleware.RouteOpt{IsAuth: true})
	api.GET("/messages/:id", chatH.History, middleware.RouteOpt{IsAuth: true})
	api.POST("/messages/send/:id", chatH.Send, middleware.RouteOpt{IsAuth: true})

	r.GET("/ws", rt.HandleWS)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Infof("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Errorf("server stopped: %v", err)
	}
}
