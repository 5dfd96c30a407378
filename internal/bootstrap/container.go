package bootstrap

import (
	"context"
	"log"
	"time"

	"course-platform-be/internal/config"
	"course-platform-be/internal/controller"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/pkg/mailer"
	"course-platform-be/internal/repository/unitofwork"
	"course-platform-be/internal/service"
	"course-platform-be/pkg/admin/banktransfer"
	adminCoupon "course-platform-be/pkg/admin/coupon"
	adminRefund "course-platform-be/pkg/admin/refund"
	"course-platform-be/pkg/admin/taxinvoice"
	"course-platform-be/pkg/checkout"
	commerceEvents "course-platform-be/pkg/commerce/events"
	pkgNats "course-platform-be/pkg/nats"
	"course-platform-be/pkg/tosspay"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	CourseController  controller.ICourseController
	CouponController  controller.ICouponController
	PaymentController controller.IPaymentController
	RefundController  controller.IRefundController
	DeviceController  controller.IDeviceController
	AdminController   controller.IAdminController

	// Background workers (exposed for main.go to run)
	MailWorker service.IMailWorker
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	eventPublisher := commerceEvents.NewNatsPublisher(natsPub, sysLogger)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// In-process mail queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	mailLogger := logger.NewIsolatedLogger("logs/mail.log")
	mailQueue := service.NewMailQueue(pubSub, mailLogger)
	mailWorker := service.NewMailWorker(pubSub, emailService, mailLogger)

	// Course catalog cache
	catalogCache := gocache.New(5*time.Minute, 10*time.Minute)

	// Payment gateway
	gateway := tosspay.NewClient(cfg.Toss.SecretKey, cfg.Toss.BaseURL)

	// 3. Domain components
	completer := checkout.NewCompleter(sysLogger)
	refundProcessor := adminRefund.NewProcessor(sysLogger, gateway, eventPublisher)
	transferApprover := banktransfer.NewApprover(sysLogger, completer, eventPublisher)
	couponManager := adminCoupon.NewManager(sysLogger)
	taxManager := taxinvoice.NewManager(sysLogger)

	// 4. Services
	courseService := service.NewCourseService(uowFactory, catalogCache)
	couponService := service.NewCouponService(uowFactory)
	paymentService := service.NewPaymentService(
		uowFactory,
		gateway,
		completer,
		eventPublisher,
		mailQueue,
		taxManager,
		cfg.Deposit,
		sysLogger,
	)
	refundService := service.NewRefundService(uowFactory, eventPublisher, sysLogger)
	deviceService := service.NewDeviceService(rdb, cfg.Device.MaxDevicesPerUser, sysLogger)
	adminService := service.NewAdminService(
		uowFactory,
		refundProcessor,
		transferApprover,
		couponManager,
		taxManager,
		mailQueue,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		Logger:            sysLogger,
		CourseController:  controller.NewCourseController(courseService),
		CouponController:  controller.NewCouponController(couponService),
		PaymentController: controller.NewPaymentController(paymentService),
		RefundController:  controller.NewRefundController(refundService),
		DeviceController:  controller.NewDeviceController(deviceService),
		AdminController:   controller.NewAdminController(adminService),

		MailWorker: mailWorker,
	}
}
