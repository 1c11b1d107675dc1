package structure

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Kellerman81/go_media_sorter/apiexternal"
	"github.com/Kellerman81/go_media_sorter/config"
	"github.com/Kellerman81/go_media_sorter/logger"
	"github.com/Kellerman81/go_media_sorter/parser"
	"github.com/Kellerman81/go_media_sorter/scanner"
)

// Organizer runs the classification and placement passes over the
// watch folder. One pass handles the folder's current contents to
// completion, items strictly in sequence since every move changes the
// destination snapshot seen by the next item.
type Organizer struct {
	cfg      config.MainConfig
	builder  PathBuilder
	lookup   TitleLookup
	resolver *TitleResolver
	movelog  *MoveLog

	// Prober reports the resolution of an untagged library file, empty
	// when it cannot tell. Replaced by tests.
	Prober func(videofile string) string
}

func NewOrganizer(cfg config.MainConfig, lookup TitleLookup, movelog *MoveLog) *Organizer {
	s := &Organizer{
		cfg:     cfg,
		builder: PathBuilder{TvRoot: cfg.Paths.TvPath, MoviesRoot: cfg.Paths.MoviesPath},
		lookup:  lookup,
		movelog: movelog,
	}
	if cfg.General.FfprobePath != "" {
		ffprobe := parser.FFProbeFilename(cfg.General.FfprobePath)
		s.Prober = func(videofile string) string {
			resolution, err := parser.ProbeResolution(ffprobe, videofile)
			if err != nil {
				logger.Log.Debug("Probe failed: ", videofile, " Error: ", err)
				return ""
			}
			return resolution
		}
	}
	return s
}

var structureJobRunning = make(map[string]bool)
var jobMu sync.Mutex

// ScanWatchFolder processes every top level entry of the watch folder.
// Overlapping passes are prevented by a run-in-progress guard.
func (s *Organizer) ScanWatchFolder() {
	jobName := s.cfg.Paths.WatchPath
	jobMu.Lock()
	if structureJobRunning[jobName] {
		logger.Log.Debug("Job already running: ", jobName)
		jobMu.Unlock()
		return
	}
	structureJobRunning[jobName] = true
	jobMu.Unlock()
	defer func() {
		jobMu.Lock()
		delete(structureJobRunning, jobName)
		jobMu.Unlock()
	}()

	logger.Log.Debug("Check Source: ", jobName)
	s.resolver = NewTitleResolver(s.lookup)
	entries, err := os.ReadDir(jobName)
	if err != nil {
		logger.Log.Error("Watch folder not readable: ", jobName, " Error: ", err)
		return
	}
	for idx := range entries {
		name := entries[idx].Name()
		// dot entries are hidden or still being written
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entries[idx].IsDir() {
			s.OrganizeFolder(filepath.Join(jobName, name))
		} else {
			s.OrganizeSingleFile(filepath.Join(jobName, name))
		}
	}
}

// OrganizeFolder sorts every video found below folder together with the
// subtitles matched to it, then removes the folder when only scraps are
// left.
func (s *Organizer) OrganizeFolder(folder string) {
	if s.resolver == nil {
		s.resolver = NewTitleResolver(s.lookup)
	}
	videofiles := s.getVideoFiles(folder)
	subtitles := scanner.GetFilesDir(folder, s.cfg.Paths.AllowedSubtitleExtensions, nil)
	if len(videofiles) == 0 {
		if len(subtitles) != 0 {
			logger.Log.Warning("Subtitles without video left in place: ", folder)
		}
		return
	}

	// pair subtitles before anything moves so matching sees the
	// original names
	assigned := make(map[int][]string, len(videofiles))
	for idx := range subtitles {
		target := MatchSubtitle(videofiles, subtitles[idx])
		if target == -1 {
			logger.Log.Warning("Subtitle unresolved, left in place: ", subtitles[idx])
			continue
		}
		assigned[target] = append(assigned[target], subtitles[idx])
	}

	for idx := range videofiles {
		s.organizeVideo(videofiles[idx], folder, assigned[idx])
	}
	scanner.CleanUpFolder(folder, s.cfg.Paths.CleanupsizeMB)
}

// OrganizeSingleFile sorts one loose file from the watch folder root.
func (s *Organizer) OrganizeSingleFile(file string) {
	if !parser.HasExtension(file, s.cfg.Paths.AllowedVideoExtensions) {
		if parser.HasExtension(file, s.cfg.Paths.AllowedSubtitleExtensions) {
			logger.Log.Warning("Subtitle unresolved, left in place: ", file)
		}
		return
	}
	if s.tooSmall(file) {
		return
	}
	if s.resolver == nil {
		s.resolver = NewTitleResolver(s.lookup)
	}
	s.organizeVideo(file, "", nil)
}

func (s *Organizer) organizeVideo(videofile string, folder string, subtitles []string) {
	m, err := s.parseVideo(videofile, folder)
	if err != nil || m.Kind == parser.KindUnknown {
		logger.Log.Warning("Could not classify, skipped: ", videofile)
		return
	}
	// a name without a resolution tag can still be compared once probed
	if m.Resolution == "" && s.Prober != nil {
		m.Resolution = s.Prober(videofile)
	}
	title := s.resolver.Resolve(&m)
	foldername, filename, err := s.builder.Build(title, &m)
	if err != nil {
		logger.Log.Error("Naming failed: ", videofile, " Error: ", err)
		return
	}

	snapshot := s.snapshotFolder(foldername, filename)
	resolved := ResolveDuplicate(snapshot, filename, m.Resolution, m.Extension)
	target := filepath.Join(foldername, resolved.Filename)
	if target == videofile {
		return
	}
	if s.alreadySorted(snapshot, foldername, filename, videofile) {
		logger.Log.Debug("Already sorted, skipped: ", videofile)
		return
	}

	for _, rename := range resolved.Renames {
		errr := os.Rename(filepath.Join(foldername, rename.From), filepath.Join(foldername, rename.To))
		if errr != nil {
			logger.Log.Error("Retag failed: ", rename.From, " Error: ", errr)
			return
		}
		logger.Log.Debug("Retagged: ", rename.From, " -> ", rename.To)
	}

	if errm := scanner.MoveFile(videofile, target, s.cfg.General.UseFileBufferCopy); errm != nil {
		logger.Log.Error("Move failed: ", videofile, " Error: ", errm)
		return
	}
	logger.Log.Info("Moved: ", videofile, " -> ", target)
	if s.movelog != nil {
		s.movelog.Append(m.Kind.String(), videofile, target)
	}
	s.notify(m, videofile, target)

	finalbase := strings.TrimSuffix(resolved.Filename, filepath.Ext(resolved.Filename))
	for idx := range subtitles {
		sub := ParseSubtitle(subtitles[idx])
		subtarget := filepath.Join(foldername, sub.DestName(finalbase))
		if errm := scanner.MoveFile(subtitles[idx], subtarget, s.cfg.General.UseFileBufferCopy); errm != nil {
			logger.Log.Error("Subtitle move failed: ", subtitles[idx], " Error: ", errm)
			continue
		}
		logger.Log.Info("Moved: ", subtitles[idx], " -> ", subtarget)
		if s.movelog != nil {
			s.movelog.Append(m.Kind.String(), subtitles[idx], subtarget)
		}
	}
}

// parseVideo parses the file name and falls back to the batch folder
// name when the file name alone gives no classification.
func (s *Organizer) parseVideo(videofile string, folder string) (parser.ParseInfo, error) {
	m, err := parser.NewFileParser(filepath.Base(videofile))
	if err != nil {
		logger.Log.Debug("Parse failed of ", filepath.Base(videofile))
		return m, err
	}
	if m.Kind == parser.KindUnknown && folder != "" {
		logger.Log.Debug("Parse of folder ", filepath.Base(folder))
		mf, errf := parser.NewFileParser(filepath.Base(folder))
		if errf == nil && mf.Kind != parser.KindUnknown {
			mf.File = m.File
			mf.Extension = m.Extension
			if mf.Resolution == "" {
				mf.Resolution = m.Resolution
			}
			return mf, nil
		}
	}
	return m, nil
}

// snapshotFolder lists the destination folder once per item. Untagged
// files sharing the canonical base get their resolution probed so the
// duplicate decision can compare them against the incoming file.
func (s *Organizer) snapshotFolder(foldername string, base string) []ExistingFile {
	entries, err := os.ReadDir(foldername)
	if err != nil {
		return nil
	}
	list := make([]ExistingFile, 0, len(entries))
	for idx := range entries {
		if entries[idx].IsDir() {
			continue
		}
		if !parser.HasExtension(entries[idx].Name(), s.cfg.Paths.AllowedVideoExtensions) {
			continue
		}
		existing := ExistingFile{Name: entries[idx].Name()}
		ebase, eres, _, _ := SplitSuffix(existing.Name)
		if ebase == base && eres == "" && s.Prober != nil {
			existing.Resolution = s.Prober(filepath.Join(foldername, existing.Name))
		}
		list = append(list, existing)
	}
	return list
}

// alreadySorted compares the source size against every same base file
// in the destination, a re-scan of placed content is a no-op.
func (s *Organizer) alreadySorted(snapshot []ExistingFile, foldername string, base string, videofile string) bool {
	srcsize := scanner.GetFileSize(videofile)
	if srcsize == 0 {
		return false
	}
	for idx := range snapshot {
		ebase, _, _, _ := SplitSuffix(snapshot[idx].Name)
		if ebase != base {
			continue
		}
		if scanner.GetFileSize(filepath.Join(foldername, snapshot[idx].Name)) == srcsize {
			return true
		}
	}
	return false
}

func (s *Organizer) getVideoFiles(folder string) []string {
	videofiles := scanner.GetFilesDir(folder, s.cfg.Paths.AllowedVideoExtensions, nil)
	if s.cfg.Paths.MinVideoSize <= 0 {
		return videofiles
	}
	keep := make([]string, 0, len(videofiles))
	for idx := range videofiles {
		if s.tooSmall(videofiles[idx]) {
			continue
		}
		keep = append(keep, videofiles[idx])
	}
	return keep
}

func (s *Organizer) tooSmall(file string) bool {
	if s.cfg.Paths.MinVideoSize <= 0 {
		return false
	}
	if scanner.GetFileSize(file) < int64(s.cfg.Paths.MinVideoSize)*1024*1024 {
		logger.Log.Debug("Skipped small video file: ", file)
		return true
	}
	return false
}

func (s *Organizer) notify(m parser.ParseInfo, sourcepath string, targetpath string) {
	if s.cfg.General.PushoverApiKey == "" || s.cfg.General.PushoverRecipient == "" {
		return
	}
	if apiexternal.PushoverApi.ApiKey != s.cfg.General.PushoverApiKey {
		apiexternal.NewPushOverClient(s.cfg.General.PushoverApiKey)
	}
	err := apiexternal.PushoverApi.SendMessage("Moved "+sourcepath+" to "+targetpath, "Sorted: "+m.Title, s.cfg.General.PushoverRecipient)
	if err != nil {
		logger.Log.Error("Error sending pushover: ", err)
	} else {
		logger.Log.Info("Pushover message sent")
	}
}
