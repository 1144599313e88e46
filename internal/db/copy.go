package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/workup/datenorm/internal/model"
)

// RecordsTable is the COPY target for normalized activity rows.
var RecordsTable = pgx.Identifier{"activity", "records"}

// ChannelSource implements pgx.CopyFromSource by reading ActivityRows from a channel.
// The bounded channel paces the file reader against the COPY writer.
type ChannelSource struct {
	ch      <-chan *model.ActivityRow
	current *model.ActivityRow
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.ActivityRow) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err always returns nil; producer errors travel on their own channel.
func (s *ChannelSource) Err() error {
	return nil
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)
