package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/JAS0NN/youtube-summary/models"
	"github.com/JAS0NN/youtube-summary/youtube"
)

const dateLayout = "2006-01-02"

// SummaryRecord carries everything needed to persist one summary file.
type SummaryRecord struct {
	Title    string
	VideoID  string
	Provider models.Provider
	Model    string
	Summary  string
}

// FileStore writes transcripts, summaries and formatted prompts to disk.
// Transcripts land in a flat directory; summaries and prompts under a
// directory keyed by the current calendar date. All writes are best-effort:
// callers log failures and move on.
type FileStore struct {
	transcriptDir string
	summaryDir    string
	promptDir     string
	logger        *logrus.Logger
	now           func() time.Time
}

func NewFileStore(transcriptDir, summaryDir, promptDir string, logger *logrus.Logger) *FileStore {
	return &FileStore{
		transcriptDir: transcriptDir,
		summaryDir:    summaryDir,
		promptDir:     promptDir,
		logger:        logger,
		now:           time.Now,
	}
}

// SaveTranscript writes the formatted transcript as
// {title}_{date}_transcript.txt in the flat transcript directory.
func (s *FileStore) SaveTranscript(t models.FormattedTranscript) (string, error) {
	date := s.now().Format(dateLayout)
	filename := youtube.SanitizeFilename(fmt.Sprintf("%s_%s_transcript.txt", t.Title, date))

	path, err := s.write(s.transcriptDir, filename, t.Body)
	if err != nil {
		return "", err
	}
	s.logger.WithField("path", path).Info("Transcript saved")
	return path, nil
}

// SaveSummary writes the summary with a metadata header under
// {summaryDir}/{date}/{date}_{title}_summary.md.
func (s *FileStore) SaveSummary(rec SummaryRecord) (string, error) {
	date := s.now().Format(dateLayout)
	filename := youtube.SanitizeFilename(fmt.Sprintf("%s_%s_summary.md", date, rec.Title))

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", rec.Title)
	fmt.Fprintf(&sb, "**Provider:** %s\n", rec.Provider)
	if rec.Provider == models.ProviderOpenRouter && rec.Model != "" {
		fmt.Fprintf(&sb, "**Model:** %s\n", rec.Model)
	}
	fmt.Fprintf(&sb, "**Date:** %s\n", date)
	fmt.Fprintf(&sb, "**Video URL:** https://www.youtube.com/watch?v=%s\n\n", rec.VideoID)
	sb.WriteString("## Summary\n\n")
	sb.WriteString(rec.Summary)

	path, err := s.write(filepath.Join(s.summaryDir, date), filename, sb.String())
	if err != nil {
		return "", err
	}
	s.logger.WithField("path", path).Info("Summary saved")
	return path, nil
}

// SavePrompt writes the flattened prompt under
// {promptDir}/{date}/{date}_{title}_prompt.txt.
func (s *FileStore) SavePrompt(title, rendered string) (string, error) {
	date := s.now().Format(dateLayout)
	filename := youtube.SanitizeFilename(fmt.Sprintf("%s_%s_prompt.txt", date, title))

	path, err := s.write(filepath.Join(s.promptDir, date), filename, rendered)
	if err != nil {
		return "", err
	}
	s.logger.WithField("path", path).Debug("Formatted prompt saved")
	return path, nil
}

func (s *FileStore) write(dir, filename, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create directory %s", dir)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}
