package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"salesdesk/admin-api/internal/config"
	"salesdesk/admin-api/internal/domain/catalog"
	"salesdesk/admin-api/internal/infrastructure/logger"
	"salesdesk/admin-api/internal/infrastructure/metrics"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

const (
	DefaultReconcileInterval = 15               // in minutes
	CronJobTimeout           = 10 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab           *crontab.Crontab
	catalogService *catalog.Service
	cfg            *config.Config
}

func NewCrontab(catalogService *catalog.Service, cfg *config.Config) *Crontab {
	return &Crontab{
		ctab:           crontab.New(),
		catalogService: catalogService,
		cfg:            cfg,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// execute once on server start
	c.reconcileStock(ctx)

	if c.cfg.StockReconcileEnabled {
		interval := c.cfg.StockReconcileMinutes
		if interval <= 0 {
			interval = DefaultReconcileInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.reconcileStock(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add stock reconcile job")
		}
		log.Warn().Msgf("Stock reconcile scheduled: every %d minute(s)", interval)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) reconcileStock(ctx context.Context) {
	log := logger.GetLogger()

	updated, err := c.catalogService.ReconcileStatuses(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reconcile product statuses")
		return
	}

	for category, rows := range updated {
		if rows > 0 {
			metrics.RecordStockReconcile(string(category), rows)
		}
	}
}
