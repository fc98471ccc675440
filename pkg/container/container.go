package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"friendshavestuff-backend/internal/config"
	infraCache "friendshavestuff-backend/internal/infrastructure/cache"
	"friendshavestuff-backend/internal/infrastructure/database"
	"friendshavestuff-backend/internal/infrastructure/email"
	"friendshavestuff-backend/internal/infrastructure/storage"
	"friendshavestuff-backend/pkg/cache"
	appdb "friendshavestuff-backend/pkg/database"
	"friendshavestuff-backend/pkg/jwt"
	"friendshavestuff-backend/pkg/logger"

	commentHandler "friendshavestuff-backend/internal/domains/comment/handler"
	commentRepo "friendshavestuff-backend/internal/domains/comment/repository"
	commentService "friendshavestuff-backend/internal/domains/comment/service"
	itemHandler "friendshavestuff-backend/internal/domains/item/handler"
	itemRepo "friendshavestuff-backend/internal/domains/item/repository"
	itemService "friendshavestuff-backend/internal/domains/item/service"
	notificationService "friendshavestuff-backend/internal/domains/notification/service"
	requestHandler "friendshavestuff-backend/internal/domains/request/handler"
	requestRepo "friendshavestuff-backend/internal/domains/request/repository"
	requestService "friendshavestuff-backend/internal/domains/request/service"
	userHandler "friendshavestuff-backend/internal/domains/user/handler"
	userRepo "friendshavestuff-backend/internal/domains/user/repository"
	userService "friendshavestuff-backend/internal/domains/user/service"
)

// Container holds the full dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache
	JWTManager   *jwt.Manager
	Storage      *storage.MinIOStorage
	EmailService email.EmailService
	AsynqClient  *asynq.Client

	UserRepo    userRepo.UserRepository
	ItemRepo    itemRepo.ItemRepository
	RequestRepo requestRepo.RequestRepository
	CommentRepo commentRepo.CommentRepository

	Dispatcher     *notificationService.Dispatcher
	UserService    userService.ServiceInterface
	ItemService    itemService.ServiceInterface
	RequestService requestService.ServiceInterface
	CommentService commentService.ServiceInterface

	UserHandler    *userHandler.UserHandler
	ItemHandler    *itemHandler.ItemHandler
	RequestHandler *requestHandler.RequestHandler
	CommentHandler *commentHandler.CommentHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container initialized", nil)
	return c, nil
}

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", nil)

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		// Redis failure is not fatal: reads fall through to Postgres.
		if err := rc.Connect(context.Background()); err != nil {
			logger.Error("Redis connection failed, continuing without cache", err)
		} else {
			logger.Info("Redis connected", nil)
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret)

	minioStorage, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	logger.Info("Object storage ready", map[string]interface{}{
		"bucket": c.Config.MinIO.Bucket,
	})

	c.EmailService = email.NewSMTPEmailService(
		c.Config.SMTP.Host,
		c.Config.SMTP.Port,
		c.Config.SMTP.From,
	)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.ItemRepo = itemRepo.NewPostgresItemRepository(pool)
	c.RequestRepo = requestRepo.NewPostgresRequestRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(pool)
}

func (c *Container) initServices() {
	c.Dispatcher = notificationService.NewDispatcher(c.AsynqClient)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.ItemService = itemService.NewItemService(
		c.ItemRepo,
		c.DB.Pool,
		c.Cache,
		c.Storage,
		storage.NewImageProcessor(),
		c.Dispatcher,
	)
	c.RequestService = requestService.NewRequestService(c.RequestRepo, appdb.NewPoolTxRunner(c.DB.Pool), c.Dispatcher)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.Dispatcher)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ItemHandler = itemHandler.NewItemHandler(c.ItemService)
	c.RequestHandler = requestHandler.NewRequestHandler(c.RequestService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
}

// Cleanup releases connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Error("Failed to close Redis", err)
			}
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}

	logger.Info("Container resources released", nil)
}
