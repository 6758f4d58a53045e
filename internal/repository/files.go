package repository

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/metrics"
)

const (
	DescriptionFile = "burger.txt"
	CountFile       = "burger_count.txt"

	defaultDirPrefix = "burger_orders_"
)

// FileOrderRepository saves each burger into its own freshly created
// directory. Directories are never reused or removed here.
type FileOrderRepository struct {
	baseDir string
	prefix  string
	counter CountSource
	metrics *metrics.Metrics
	logger  logrus.FieldLogger
}

// NewFileOrderRepository creates a repository rooted at baseDir ("" means
// the OS temp dir). counter supplies the value written to CountFile.
func NewFileOrderRepository(baseDir, prefix string, counter CountSource, m *metrics.Metrics, logger logrus.FieldLogger) *FileOrderRepository {
	if prefix == "" {
		prefix = defaultDirPrefix
	}
	return &FileOrderRepository{
		baseDir: baseDir,
		prefix:  prefix,
		counter: counter,
		metrics: m,
		logger:  logging.Component(logger, "order-files"),
	}
}

// Save writes description and the current order count into a new directory
// and returns its path. Failures are logged and reported as ok == false.
func (r *FileOrderRepository) Save(description string) (dir string, ok bool) {
	if description == "" {
		r.logger.Error("Cannot save empty burger description")
		r.metrics.OrderSaved(metrics.OutcomeRejected)
		return "", false
	}

	dir, err := r.write(description)
	if err != nil {
		r.logger.WithField("error", err.Error()).Error("Failed to save burger")
		r.metrics.OrderSaved(metrics.OutcomeFailed)
		return "", false
	}

	r.logger.WithField("dir", dir).Infof("Burger saved to %s", dir)
	r.metrics.OrderSaved(metrics.OutcomeSuccess)
	return dir, true
}

func (r *FileOrderRepository) write(description string) (string, error) {
	dir, err := os.MkdirTemp(r.baseDir, r.prefix)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, DescriptionFile), []byte(description), 0o644); err != nil {
		return "", err
	}

	count := strconv.Itoa(r.counter.Count())
	if err := os.WriteFile(filepath.Join(dir, CountFile), []byte(count), 0o644); err != nil {
		return "", err
	}

	return dir, nil
}
