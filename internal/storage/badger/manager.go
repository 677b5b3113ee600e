package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/common"
	"github.com/ternarybob/scribe/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	title     interfaces.TitleStorage
	request   interfaces.RequestStorage
	article   interfaces.ArticleStorage
	theme     interfaces.ThemeStorage
	reference interfaces.ReferenceStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := newManager(db, logger)
	logger.Info().Str("path", config.Path).Msg("Badger storage manager initialized")
	return manager, nil
}

func newManager(db *BadgerDB, logger arbor.ILogger) *Manager {
	reference := NewReferenceStorage(db, logger)
	return &Manager{
		db:        db,
		title:     NewTitleStorage(db, reference, logger),
		request:   NewRequestStorage(db, logger),
		article:   NewArticleStorage(db, logger),
		theme:     NewThemeStorage(db, logger),
		reference: reference,
		logger:    logger,
	}
}

// TitleStorage returns the ManualTitle storage interface
func (m *Manager) TitleStorage() interfaces.TitleStorage {
	return m.title
}

// RequestStorage returns the GenerationRequest storage interface
func (m *Manager) RequestStorage() interfaces.RequestStorage {
	return m.request
}

// ArticleStorage returns the Article storage interface
func (m *Manager) ArticleStorage() interfaces.ArticleStorage {
	return m.article
}

// ThemeStorage returns the theme-kind storage interface
func (m *Manager) ThemeStorage() interfaces.ThemeStorage {
	return m.theme
}

// ReferenceStorage returns the platform/country storage interface
func (m *Manager) ReferenceStorage() interfaces.ReferenceStorage {
	return m.reference
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
