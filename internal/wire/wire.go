package wire

import (
	"Vitrine/internal/api"
	"Vitrine/internal/api/config"
	"Vitrine/internal/api/handler"
	"Vitrine/internal/job"
	"Vitrine/internal/pkg/cron"
	"Vitrine/internal/pkg/kafka"
	pkgmongo "Vitrine/internal/pkg/mongo"
	"Vitrine/internal/repository"
	"Vitrine/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	storeRepo := repository.NewStoreRepo(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	productRepo := repository.NewProductRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	recRepo := repository.NewRecommendationRepo(db)
	trendingRepo := repository.NewTrendingRepo(db)
	similarityRepo := repository.NewSimilarityRepo(db)
	behaviorProfileRepo := repository.NewBehaviorProfileRepo(db)
	recProfileRepo := repository.NewRecProfileRepo(db)
	eventRepo := pkgmongo.NewInteractionEventRepo(mongoDB)

	generators := []service.Generator{
		service.NewCollaborativeGenerator(interactionRepo),
		service.NewContentGenerator(interactionRepo, productRepo),
		service.NewPopularityGenerator(interactionRepo),
	}

	storeService := service.NewStoreService(storeRepo)
	userService := service.NewUserService(userRepo, behaviorProfileRepo, recProfileRepo)
	recService := service.NewRecommendationService(cfg.Recommend, generators, recRepo, recProfileRepo, productRepo)
	trendingService := service.NewTrendingService(cfg.Recommend, interactionRepo, trendingRepo, productRepo)
	similarityService := service.NewSimilarityService(cfg.Recommend, productRepo, similarityRepo)
	behaviorProfileService := service.NewBehaviorProfileService(userRepo, interactionRepo, sessionRepo, behaviorProfileRepo)
	eventService := service.NewEventService(storeRepo, userRepo, sessionRepo, productRepo, interactionRepo, eventRepo, userService, recService)

	handlers := &api.HandlersGroup{
		EventHandler:          handler.NewEventHandler(eventService),
		RecommendationHandler: handler.NewRecommendationHandler(recService, userService),
		TrendingHandler:       handler.NewTrendingHandler(trendingService),
		SimilarHandler:        handler.NewSimilarHandler(similarityService),
		UserHandler:           handler.NewUserHandler(userService),
	}

	router := api.SetupRouter(handlers, storeService)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, eventService)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewTrendingJob(storeRepo, trendingService),
		job.NewSimilarityJob(storeRepo, similarityService),
		job.NewBehaviorProfileJob(behaviorProfileService),
		job.NewRecommendationGCJob(cfg.Recommend, recRepo, eventRepo),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
