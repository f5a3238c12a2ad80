package partner

import (
	"errors"

	"github.com/garments-erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// passDomain returns domain errors unchanged and logs and hides everything else
func passDomain(logger *zap.Logger, err error, message string) error {
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	logger.Error(message, zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}
