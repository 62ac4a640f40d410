package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/telaffuz/internal/model"
	"github.com/verte-zerg/telaffuz/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions          []model.SessionAggregate
	WindowSessionIDs  []int64
	PhonemeAggsAll    []model.PhonemeAggregate
	PhonemeAggsWindow []model.PhonemeAggregate
	Confusions        []model.ConfusionStats
	LastWords         []model.WordStats
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	aggsAll, err := st.ListPhonemeAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	aggsWindow, err := st.ListPhonemeAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}
	confusions, err := st.ListConfusions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	var lastWords []model.WordStats
	if len(sessions) > 0 {
		lastWords, err = st.ListWords(ctx, sessions[len(sessions)-1].SessionID)
		if err != nil {
			return Report{}, err
		}
	}

	return Report{
		Sessions:          sessions,
		WindowSessionIDs:  windowIDs,
		PhonemeAggsAll:    aggsAll,
		PhonemeAggsWindow: aggsWindow,
		Confusions:        confusions,
		LastWords:         lastWords,
	}, nil
}

// Render writes every section of the report.
func (r Report) Render(w io.Writer, cfg model.StatsConfig) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if top := TopPhonemesByFrequency(r.PhonemeAggsAll, 3); len(top) > 0 {
		if _, err := fmt.Fprintf(w, "Most Practiced Vowels: %s\n\n", strings.Join(top, " ")); err != nil {
			return err
		}
	}
	if err := RenderCurves(w, r.Sessions, cfg.CurveWindow); err != nil {
		return err
	}
	if err := RenderPhonemeTable(w, r.PhonemeAggsWindow); err != nil {
		return err
	}
	if err := RenderConfusions(w, r.Confusions, defaultConfusionRows); err != nil {
		return err
	}
	return RenderLastSession(w, r.LastWords)
}

// RenderLastSession prints the word results of the most recent session.
func RenderLastSession(w io.Writer, words []model.WordStats) error {
	if len(words) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Last Session"); err != nil {
		return err
	}
	table := newTextTable(textColumn("Word"), textColumn("Heard"), numericColumn("Score"), textColumn("Verdict"))
	for _, word := range words {
		verdict := "ok"
		if !word.Correct {
			verdict = word.ErrorKind
		}
		table.addRow(word.Target, word.Recognized, scoreCell(word.Score), verdict)
	}
	return table.write(w)
}

const defaultConfusionRows = 10

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
