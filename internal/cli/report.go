package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/brainboost/internal/report"
	"github.com/vytor/brainboost/internal/scoring"
	"github.com/vytor/brainboost/internal/services"
)

func newReportCmd() *cobra.Command {
	var withInsights bool

	cmd := &cobra.Command{
		Use:   "report <submission.json|->",
		Short: "Score a submission offline and print the report as JSON",
		Long: "Reads a JSON document with \"submission\" and \"profile\" fields, scores it against the content pack " +
			"and prints the report. No database is used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			log := setupLogger(cmd, cfg, false)
			if err := cfg.Scoring().Validate(); err != nil {
				return fmt.Errorf("scoring configuration: %w", err)
			}

			req, err := readSubmission(cmd, args[0])
			if err != nil {
				return err
			}
			pack, err := loadPack(cfg.ContentPath)
			if err != nil {
				return err
			}
			cat := pack.Catalog()

			ids := make([]string, 0, len(req.Submission.Answers))
			for _, a := range req.Submission.Answers {
				ids = append(ids, a.QuestionID)
			}

			scorer := scoring.New(cfg.Scoring(), scoring.WithLessonIndex(cat))
			asm := report.NewAssembler(scorer, recommender(), reportConfig(cfg))
			rep, res := asm.AssembleWithResult(req.Submission, req.Profile, cat.Questions(ids), cat)
			if len(res.UnmatchedQuestionIDs) > 0 {
				log.Warn("answers reference unknown questions, scored as incorrect: ids=%s",
					strings.Join(res.UnmatchedQuestionIDs, ","))
			}

			var out any = rep
			if withInsights {
				out = struct {
					Report   any                     `json:"report"`
					Insights report.EducatorInsights `json:"insights"`
				}{rep, report.Insights(rep)}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&withInsights, "insights", false, "Include educator insights next to the report")
	return cmd
}

func readSubmission(cmd *cobra.Command, path string) (services.SubmitRequest, error) {
	var (
		r   io.Reader
		req services.SubmitRequest
	)
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("open submission: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode submission: %w", err)
	}
	if req.Submission.UserID == "" {
		req.Submission.UserID = req.Profile.UserID
	}
	return req, nil
}
