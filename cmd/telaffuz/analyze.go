package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/telaffuz/internal/audio"
	"github.com/verte-zerg/telaffuz/internal/config"
	"github.com/verte-zerg/telaffuz/internal/model"
	"github.com/verte-zerg/telaffuz/internal/pronounce"
	"github.com/verte-zerg/telaffuz/internal/session"
	"github.com/verte-zerg/telaffuz/internal/speech"
	"github.com/verte-zerg/telaffuz/internal/stats"
	"github.com/verte-zerg/telaffuz/internal/store"
)

var (
	analyzeAudio      string
	analyzeTarget     string
	analyzeRecognized string
	analyzeModel      string
	analyzeJSON       bool
	analyzeNoSave     bool
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a recorded WAV file against a target sentence",
		Args:  cobra.NoArgs,
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVar(&analyzeAudio, "audio", "", "path to a WAV recording")
	cmd.Flags().StringVar(&analyzeTarget, "target", "", "sentence the speaker intended to say")
	cmd.Flags().StringVar(&analyzeRecognized, "recognized", "", "recognized text (skips the speech model)")
	cmd.Flags().StringVar(&analyzeModel, "model", config.DefaultModelPath(), "speech model directory")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "do not store the result")
	_ = cmd.MarkFlagRequired("audio")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "model", &analyzeModel, fileCfg.Analysis.Model)
	save := !analyzeNoSave
	if !cmd.Flags().Changed("no-save") && fileCfg.Analysis.Save != nil {
		save = *fileCfg.Analysis.Save
	}

	runner := &session.Runner{
		Analyzer: pronounce.NewAnalyzer(audio.WAVLoader{}, pronounce.WithLogger(logger)),
		Log:      logger,
	}
	req := session.Request{
		AudioPath: analyzeAudio,
		Target:    analyzeTarget,
		Source:    model.SourceAnalyze,
		StartedAt: time.Now(),
	}
	if cmd.Flags().Changed("recognized") {
		recognized := analyzeRecognized
		req.Recognized = &recognized
	} else {
		recognizer, err := speech.NewVosk(analyzeModel)
		if err != nil {
			return modelLoadError(analyzeModel, err)
		}
		defer recognizer.Close()
		runner.Transcriber = recognizer
	}

	if save {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Warn().Err(cerr).Msg("failed to close db")
			}
		}()
		runner.Store = st
	}

	res, err := runner.Run(context.Background(), req)
	if err != nil {
		if res.AudioPath == "" {
			return err
		}
		// Analysis finished; only storing it failed.
		logger.Warn().Err(err).Msg("result not saved")
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Report); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return stats.RenderAnalysis(out, res.Report)
}
