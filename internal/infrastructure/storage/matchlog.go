// Пакет storage выгружает журнал матча на диск: человекочитаемый
// JSON документ целиком и сжатый JSONL архив событий.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

// MatchLogWriter пишет журнал матча в красивый JSON файл.
// Файл перезаписывается целиком на каждом сбросе: документ мал,
// а читать его должен человек.
type MatchLogWriter struct {
	dir  string
	name string
}

func NewMatchLogWriter(dir string) *MatchLogWriter {
	return &MatchLogWriter{
		dir:  dir,
		name: fmt.Sprintf("match-%s.json", time.Now().UTC().Format("2006-01-02-150405")),
	}
}

// Path возвращает путь итогового документа
func (w *MatchLogWriter) Path() string {
	return filepath.Join(w.dir, w.name)
}

// Dump сериализует события с отступами и атомарно заменяет файл
func (w *MatchLogWriter) Dump(events []domain.Event) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}

	tmp := w.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, w.Path())
}

// JournalSink - наблюдатель симуляции, выгружающий журнал на диск.
// Сбросы приходят из цикла симуляции, запись держится короткой.
type JournalSink struct {
	writer  *MatchLogWriter
	archive *EventArchive
	all     []domain.Event
}

// NewJournalSink создает сток журнала. archive может быть nil.
func NewJournalSink(dir string, archive *EventArchive) *JournalSink {
	return &JournalSink{
		writer:  NewMatchLogWriter(dir),
		archive: archive,
	}
}

func (s *JournalSink) OnPlayerStatus(domain.ActorID, domain.PerceptionSnapshot) {}
func (s *JournalSink) OnGameState(domain.GameState)                             {}

func (s *JournalSink) OnMatchLog(events []domain.Event) {
	s.all = append(s.all, events...)

	if err := s.writer.Dump(s.all); err != nil {
		logger.Log.WithError(err).Warn("Match log not written")
	}

	if s.archive != nil {
		for _, e := range events {
			if err := s.archive.Write(e); err != nil {
				logger.Log.WithError(err).Warn("Event not archived")
				break
			}
		}
	}
}

// Close закрывает архив, если он был включен
func (s *JournalSink) Close() error {
	if s.archive != nil {
		return s.archive.Close()
	}
	return nil
}
