package links

import (
	"context"
	"errors"

	"backoffice-access/core/access"
	"backoffice-access/core/utils"
)

// Saver persists an assignment. Storage lives outside this service.
type Saver interface {
	Save(ctx context.Context, a *Assignment) error
}

type LogSaver struct {
	logger *utils.Logger
}

func NewLogSaver(logger *utils.Logger) *LogSaver {
	return &LogSaver{logger: logger}
}

func (s *LogSaver) Save(ctx context.Context, a *Assignment) error {
	if a == nil {
		return errors.New("nil assignment")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.logger == nil {
		return nil
	}
	modules := 0
	for _, l := range a.Links {
		modules += access.CountEnabledModules(l.Access)
	}
	s.logger.Printf("access assignment saved id=%s user=%s profile=%s links=%d modules=%d", a.ID, a.Username, a.Profile, len(a.Links), modules)
	for _, l := range a.Links {
		s.logger.Debugf("access link user=%s company=%s branch=%s fingerprint=%s", a.Username, l.CompanyID, l.BranchID, access.Fingerprint(l.Access))
	}
	return nil
}
