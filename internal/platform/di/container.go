// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"net/http"
	"strings"

	httpin "framecraft/internal/adapters/in/http"
	"framecraft/internal/adapters/in/http/middleware"
	outdb "framecraft/internal/adapters/out/db"
	outfs "framecraft/internal/adapters/out/firestore"
	outgcs "framecraft/internal/adapters/out/gcs"
	"framecraft/internal/adapters/out/mail"
	"framecraft/internal/adapters/out/memory"
	"framecraft/internal/adapters/out/ordersubmit"
	usecase "framecraft/internal/application/usecase"
	assetdom "framecraft/internal/domain/asset"
	"framecraft/internal/infra/assethost"
	"framecraft/internal/platform/di/shared"
)

// Container wires the whole service: infra clients, adapters, usecases
// and the session middleware. main.go builds one and serves Handler().
type Container struct {
	Infra *shared.Infra

	// usecases
	AssetResolveUC *usecase.AssetResolveUsecase
	AssetSaveUC    *usecase.AssetSaveUsecase
	CartUC         *usecase.CartUsecase
	UploadBatchUC  *usecase.UploadBatchUsecase
	CheckoutUC     *usecase.CheckoutUsecase

	// middleware
	SessionAuth *middleware.SessionAuthMiddleware
}

// NewContainer builds the full dependency graph.
func NewContainer(ctx context.Context) (*Container, error) {
	inf, err := shared.NewInfra(ctx)
	if err != nil {
		return nil, err
	}

	cont := &Container{Infra: inf}
	cfg := inf.Config

	// --------------------------------------------------------
	// Asset storage tiers
	// --------------------------------------------------------

	// durable (optional: needs Postgres)
	var durable assetdom.Repository
	if inf.DB != nil {
		pg := outdb.NewAssetRecordRepositoryPG(inf.DB.Client)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Printf("[di] WARN: asset_records schema init failed: %v (durable tier disabled)", err)
		} else {
			durable = pg
		}
	}

	// session tiers (Firestore)
	session := outfs.NewSessionAssetRepositoryFS(inf.Firestore, inf.SessionAssetCollection, 0)

	// memory tier
	mem := memory.NewAssetStoreMem()

	cont.AssetResolveUC = usecase.NewAssetResolveUsecase(durable, session, mem, inf.AssetKeyPrefix)
	cont.AssetSaveUC = usecase.NewAssetSaveUsecase(durable, session, mem, inf.AssetKeyPrefix, int(cfg.CompressedCapBytes))

	// --------------------------------------------------------
	// Cart
	// --------------------------------------------------------
	cartRepo := outfs.NewCartRepositoryFS(inf.Firestore, inf.CartsCollection)
	cont.CartUC = usecase.NewCartUsecase(cartRepo)

	// --------------------------------------------------------
	// Uploader (http asset host by default, gcs when configured)
	// --------------------------------------------------------
	uploader := buildUploader(ctx, cont)
	cont.UploadBatchUC = usecase.NewUploadBatchUsecase(cont.AssetResolveUC, uploader)

	// --------------------------------------------------------
	// Order submission + mail
	// --------------------------------------------------------
	var submitter usecase.OrderSubmitter
	if u := strings.TrimSpace(cfg.OrderServiceURL); u != "" {
		apiKey := shared.ResolveSecretRef(ctx, inf.SecretManager, inf.ProjectID, cfg.OrderServiceAPIKey)
		submitter = ordersubmit.NewHTTPSubmitter(u, apiKey)
	} else {
		log.Printf("[di] WARN: ORDER_SERVICE_URL empty (checkout submission unavailable)")
	}

	var mailer usecase.EmailClient
	if key := shared.ResolveSecretRef(ctx, inf.SecretManager, inf.ProjectID, cfg.SendGridAPIKey); key != "" {
		mailer = mail.NewSendGridClient(key)
	} else {
		log.Printf("[di] SendGrid not configured (confirmation mail disabled)")
	}

	cont.CheckoutUC = usecase.NewCheckoutUsecase(
		cont.UploadBatchUC,
		cartRepo,
		submitter,
		mailer,
		cfg.MailFrom,
	)

	// --------------------------------------------------------
	// Session middleware
	// --------------------------------------------------------
	cont.SessionAuth = &middleware.SessionAuthMiddleware{FirebaseAuth: inf.FirebaseAuth}

	return cont, nil
}

// buildUploader picks the asset host backend by ASSET_HOST_MODE.
func buildUploader(ctx context.Context, cont *Container) usecase.AssetUploader {
	inf := cont.Infra
	cfg := inf.Config

	mode := strings.ToLower(strings.TrimSpace(cfg.AssetHostMode))
	if mode == "gcs" {
		if inf.GCS == nil || strings.TrimSpace(cfg.AssetBucket) == "" {
			log.Printf("[di] WARN: ASSET_HOST_MODE=gcs but storage client or ASSET_BUCKET missing (uploads unavailable)")
			return nil
		}
		log.Printf("[di] uploader=gcs bucket=%s", cfg.AssetBucket)
		return outgcs.NewAssetUploaderGCS(inf.GCS, cfg.AssetBucket, cfg.UploadFolder)
	}

	if strings.TrimSpace(cfg.UploadEndpoint) == "" {
		log.Printf("[di] WARN: UPLOAD_ENDPOINT empty (uploads unavailable)")
		return nil
	}
	apiKey := shared.ResolveSecretRef(ctx, inf.SecretManager, inf.ProjectID, cfg.UploadAPIKey)
	log.Printf("[di] uploader=http endpoint=%s", cfg.UploadEndpoint)
	return assethost.NewHTTPUploader(cfg.UploadEndpoint, cfg.UploadPreset, cfg.UploadFolder, apiKey)
}

// Handler builds the routed handler (without the outer CORS/Recover
// chain; main.go owns that ordering).
func (c *Container) Handler() http.Handler {
	return httpin.NewRouter(httpin.RouterDeps{
		CartUC:         c.CartUC,
		AssetSaveUC:    c.AssetSaveUC,
		AssetResolveUC: c.AssetResolveUC,
		CheckoutUC:     c.CheckoutUC,
		UploadBatchUC:  c.UploadBatchUC,
		SessionAuth:    c.SessionAuth,
	})
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Infra.Close()
}
