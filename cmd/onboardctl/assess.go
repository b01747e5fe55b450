package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/service"
)

var (
	assessFile     string
	assessExisting string
	assessFormat   string
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score an application file without a running service",
	Long: `Score an onboarding application read from a YAML or JSON file and report
duplicate warnings against an optional file of existing applications.

The existing file is a list of {id, application} entries.

Examples:
  onboardctl assess --file vendor.yaml
  onboardctl assess --file client.json --existing submissions.yaml --format human`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resp, err := assessApplicationFile(assessFile, assessExisting)
		if err != nil {
			return err
		}
		return writeAssessment(cmd.OutOrStdout(), resp, assessFormat)
	},
}

func init() {
	assessCmd.Flags().StringVarP(&assessFile, "file", "f", "", "Application file (.yaml, .yml or .json)")
	assessCmd.Flags().StringVar(&assessExisting, "existing", "", "File of existing applications to check for duplicates")
	assessCmd.Flags().StringVar(&assessFormat, "format", "json", "Output format (json, human)")
	_ = assessCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(assessCmd)
}

// existingEntry is one stored application in an --existing file.
type existingEntry struct {
	ID          string               `json:"id" yaml:"id"`
	Application dto.ApplicationInput `json:"application" yaml:"application"`
}

func assessApplicationFile(appPath, existingPath string) (dto.AssessmentPreviewResponse, error) {
	var in dto.ApplicationInput
	if err := decodeFile(appPath, &in); err != nil {
		return dto.AssessmentPreviewResponse{}, err
	}
	record, err := in.ToRecord()
	if err != nil {
		return dto.AssessmentPreviewResponse{}, fmt.Errorf("%s: %w", appPath, err)
	}

	var existing []service.ExistingRecord
	if existingPath != "" {
		var entries []existingEntry
		if err := decodeFile(existingPath, &entries); err != nil {
			return dto.AssessmentPreviewResponse{}, err
		}
		for i, e := range entries {
			r, err := e.Application.ToRecord()
			if err != nil {
				return dto.AssessmentPreviewResponse{}, fmt.Errorf("%s entry %d: %w", existingPath, i, err)
			}
			id := e.ID
			if id == "" {
				id = fmt.Sprintf("existing-%d", i+1)
			}
			existing = append(existing, service.ExistingRecord{ID: id, Record: r})
		}
	}

	assessment, err := service.NewRiskScorer().Assess(&record)
	if err != nil {
		return dto.AssessmentPreviewResponse{}, err
	}
	duplicates, err := service.NewDuplicateDetector().FindDuplicates(&record, existing)
	if err != nil {
		return dto.AssessmentPreviewResponse{}, err
	}

	return dto.AssessmentPreviewResponse{
		Assessment: dto.FromAssessment(assessment),
		Duplicates: dto.FromDuplicates(duplicates),
	}, nil
}

// decodeFile reads JSON or YAML depending on the file extension.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%s: unsupported file type, use .yaml, .yml or .json", path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeAssessment(w io.Writer, resp dto.AssessmentPreviewResponse, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "human":
		return writeAssessmentHuman(w, resp)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeAssessmentHuman(w io.Writer, resp dto.AssessmentPreviewResponse) error {
	a := resp.Assessment
	var b strings.Builder

	fmt.Fprintf(&b, "Risk score: %d/100 (%s risk)\n", a.Score, a.Level)
	fmt.Fprintf(&b, "Status:     %s\n", a.Status)

	if len(a.Factors) == 0 {
		b.WriteString("\nNo risk factors.\n")
	} else {
		fmt.Fprintf(&b, "\nRisk factors (%d):\n", len(a.Factors))
		for _, f := range a.Factors {
			fmt.Fprintf(&b, "  [%s] %s", strings.ToUpper(f.Severity), f.Message)
			if len(f.Fields) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(f.Fields, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(resp.Duplicates) > 0 {
		fmt.Fprintf(&b, "\nPossible duplicates (%d):\n", len(resp.Duplicates))
		for _, d := range resp.Duplicates {
			fmt.Fprintf(&b, "  %s: %s (%s)\n", d.Type, d.Message, d.ExistingID)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
