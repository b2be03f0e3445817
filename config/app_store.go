package config

import (
	"fmt"
	"strings"

	"github.com/akeren/bizguard-leads/domain/submission"
	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/akeren/bizguard-leads/pkg/constants"
	"github.com/akeren/bizguard-leads/pkg/utils"
	"gorm.io/gorm"
)

const (
	StoreKindFile     = "file"
	StoreKindDatabase = "database"
)

type StoreConfig struct {
	Kind    string
	DataDir string
}

func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Kind:    strings.ToLower(utils.GetEnvTrimmedOrDefault("SUBMISSION_STORE", StoreKindFile)),
		DataDir: utils.GetEnvTrimmedOrDefault("DATA_DIR", constants.DefaultDataDir),
	}
}

func (sc *StoreConfig) NeedsDatabase() bool {
	return sc.Kind == StoreKindDatabase
}

// NewSubmissionStore builds the repository selected by SUBMISSION_STORE.
// db is only consulted for the database store.
func (sc *StoreConfig) NewSubmissionStore(logger *log.Logger, db *gorm.DB) (submission.SubmissionRepository, error) {
	switch sc.Kind {
	case StoreKindFile:
		logger.Info("Submissions stored as JSON files", "data_dir", sc.DataDir)
		return submission.NewFileRepository(sc.DataDir), nil
	case StoreKindDatabase:
		if db == nil {
			return nil, fmt.Errorf("SUBMISSION_STORE=%s requires a database connection", StoreKindDatabase)
		}
		logger.Info("Submissions stored in database")
		return submission.NewDatabaseRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported SUBMISSION_STORE %q (want %s or %s)", sc.Kind, StoreKindFile, StoreKindDatabase)
	}
}
