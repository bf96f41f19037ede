package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/handlers"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	infraRepo "github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	ucAuth "github.com/BruksfildServices01/salon-manager/internal/usecase/auth"
	ucHair "github.com/BruksfildServices01/salon-manager/internal/usecase/hairprofile"
	ucProduct "github.com/BruksfildServices01/salon-manager/internal/usecase/product"
	ucSlot "github.com/BruksfildServices01/salon-manager/internal/usecase/slot"
	ucSpecialty "github.com/BruksfildServices01/salon-manager/internal/usecase/specialty"
	ucUser "github.com/BruksfildServices01/salon-manager/internal/usecase/user"
)

// Deps reúne o que o main monta antes de registrar as rotas.
// Passwords e Issuer ficam nil com provedor externo; Storage fica nil
// quando o upload não está configurado.
type Deps struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *zap.Logger

	Authenticator identity.Authenticator
	Provider      identity.Provider
	Passwords     identity.PasswordAuthenticator
	Issuer        ucAuth.TokenIssuer
	Sessions      ucAuth.Sessions
	Limiter       ucAuth.AttemptLimiter

	Storage storage.MediaStore
	Audit   audit.Publisher
	Clock   timezone.Clock
	Loc     *time.Location
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	specialtyRepo := infraRepo.NewSpecialtyGormRepository(d.DB)
	slotRepo := infraRepo.NewSlotGormRepository(d.DB)
	hairRepo := infraRepo.NewHairProfileGormRepository(d.DB)
	productRepo := infraRepo.NewProductGormRepository(d.DB)
	auditRepo := infraRepo.NewAuditGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES - USERS / AUTH
	// ======================================================
	createUserUC := ucUser.NewCreateUser(userRepo, d.Provider, nil, d.Audit, d.Log)

	registerUC := ucAuth.NewRegister(createUserUC, d.Sessions, d.Issuer, d.Clock, d.Cfg.TokenTTL)
	loginUC := ucAuth.NewLogin(
		userRepo,
		d.Passwords,
		d.Sessions,
		d.Issuer,
		d.Limiter,
		d.Clock,
		d.Cfg.TokenTTL,
		d.Audit,
		d.Log,
	)
	logoutUC := ucAuth.NewLogout(d.Sessions, d.Audit)
	changePasswordUC := ucAuth.NewChangePassword(userRepo, d.Passwords, d.Sessions, d.Audit)
	currentUC := ucAuth.NewCurrent(userRepo, hairRepo)

	// ======================================================
	// 🧠 USE CASES - SALÃO
	// ======================================================
	assignments := ucSpecialty.NewAssignments(specialtyRepo, userRepo, d.Clock, d.Audit)
	slots := ucSlot.NewSlots(slotRepo, userRepo, d.Audit)
	hairProfiles := ucHair.NewHairProfiles(hairRepo, userRepo, d.Storage, d.Audit, d.Log)
	catalog := ucProduct.NewCatalog(productRepo, d.Storage, d.Audit, d.Log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, changePasswordUC, d.Log)
	meHandler := handlers.NewMeHandler(currentUC, d.Log)

	userHandler := handlers.NewUserHandler(
		createUserUC,
		ucUser.NewListUsers(userRepo),
		ucUser.NewGetUser(userRepo),
		ucUser.NewUpdateUser(userRepo, d.Sessions, d.Audit),
		ucUser.NewSetUserActive(userRepo, d.Provider, d.Sessions, d.Audit),
		ucUser.NewAdjustLoyalty(userRepo, d.Audit),
		d.Log,
	)
	hairHandler := handlers.NewHairProfileHandler(hairProfiles, d.Log)

	specialtyHandler := handlers.NewSpecialtyHandler(
		ucSpecialty.NewCreateSpecialty(specialtyRepo, d.Audit),
		ucSpecialty.NewListSpecialties(specialtyRepo),
		ucSpecialty.NewUpdateSpecialty(specialtyRepo, d.Audit),
		ucSpecialty.NewRecountSpecialties(specialtyRepo, d.Audit),
		assignments,
		d.Log,
	)
	slotHandler := handlers.NewSlotHandler(slots, d.Log)
	productHandler := handlers.NewProductHandler(catalog, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo, d.Loc, d.Log)

	adminOnly := middleware.RequirePermission(role.UsersWrite)
	staff := middleware.RequirePermission(role.UsersRead, role.ClientsRead)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Authenticator))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.PUT("/auth/password", authHandler.ChangePassword)

			secured.GET("/me", meHandler.GetMe)

			me := secured.Group("/me/hair-profile", middleware.RequireRole(role.Client))
			{
				me.GET("", hairHandler.GetMine)
				me.PUT("", hairHandler.PutMine)
			}

			// ------------------------------
			// USERS
			// ------------------------------
			users := secured.Group("/users")
			{
				users.GET("", staff, userHandler.List)
				users.POST("", adminOnly, userHandler.Create)
				users.GET("/:id", staff, userHandler.Get)
				users.PATCH("/:id", adminOnly, userHandler.Update)
				users.POST("/:id/deactivate", adminOnly, userHandler.Deactivate)
				users.POST("/:id/reactivate", adminOnly, userHandler.Reactivate)

				loyalty := middleware.RequirePermission(role.LoyaltyWrite)
				users.POST("/:id/loyalty", loyalty, userHandler.AddLoyalty)
				users.POST("/:id/loyalty/redeem", loyalty, userHandler.RedeemLoyalty)

				hair := middleware.RequirePermission(role.HairProfilesRead, role.HairProfileWrite)
				users.GET("/:id/hair-profile", hair, hairHandler.Get)
				users.PUT("/:id/hair-profile", hair, hairHandler.Put)
				users.POST("/:id/hair-profile/photo", hair, hairHandler.UploadPhoto)
			}

			// ------------------------------
			// SPECIALTIES
			// ------------------------------
			specialtiesWrite := middleware.RequirePermission(role.SpecialtiesWrite)

			specialties := secured.Group("/specialties")
			{
				specialties.GET("", specialtyHandler.List)
				specialties.POST("", specialtiesWrite, specialtyHandler.Create)
				specialties.POST("/recount", specialtiesWrite, specialtyHandler.Recount)
				specialties.PATCH("/:id", specialtiesWrite, specialtyHandler.Update)
				specialties.POST("/:id/deactivate", specialtiesWrite, specialtyHandler.Deactivate)
				specialties.GET("/:id/stylists", specialtyHandler.Stylists)
			}

			// ------------------------------
			// STYLISTS / SLOTS
			// ------------------------------
			stylists := secured.Group("/stylists/:id")
			{
				stylists.GET("/specialties", specialtyHandler.ListForStylist)
				stylists.POST("/specialties", specialtiesWrite, specialtyHandler.Assign)
				stylists.DELETE("/specialties/:specialtyId", specialtiesWrite, specialtyHandler.Unassign)

				// dono do horário é checado no caso de uso
				stylists.GET("/slots", slotHandler.List)
				stylists.POST("/slots", slotHandler.Create)
			}

			secured.PATCH("/slots/:id", slotHandler.Update)
			secured.POST("/slots/:id/active", slotHandler.SetActive)

			// ------------------------------
			// PRODUCTS
			// ------------------------------
			productsWrite := middleware.RequirePermission(role.ProductsWrite)

			products := secured.Group("/products")
			{
				products.GET("", productHandler.List)
				products.GET("/:id", productHandler.Get)
				products.POST("", productsWrite, productHandler.Create)
				products.PATCH("/:id", productsWrite, productHandler.Update)
				products.POST("/:id/active", productsWrite, productHandler.SetActive)
				products.POST("/:id/image", productsWrite, productHandler.UploadImage)
			}

			secured.GET("/audit-logs", middleware.RequirePermission(role.AuditRead), auditLogsHandler.List)
		}
	}
}
