package scanner

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kellerman81/go_media_sorter/logger"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// GetFilesDir lists all files below rootpath whose extension is in
// filetypes (lowercase, with dot). An empty filetypes list matches every
// file. Paths containing one of ignoredpaths are skipped.
func GetFilesDir(rootpath string, filetypes []string, ignoredpaths []string) []string {
	list := make([]string, 0, 100)

	if _, err := os.Stat(rootpath); os.IsNotExist(err) {
		logger.Log.Error("Path not found: ", rootpath)
		return list
	}
	err := godirwalk.Walk(rootpath, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}

			ok := len(filetypes) == 0
			for _, extension := range filetypes {
				if extension == strings.ToLower(filepath.Ext(osPathname)) {
					ok = true
					break
				}
			}

			path, _ := filepath.Split(osPathname)
			for idxignore := range ignoredpaths {
				if ignoredpaths[idxignore] == "" {
					continue
				}
				if strings.Contains(path, ignoredpaths[idxignore]) {
					ok = false
				}
			}

			if ok {
				list = append(list, osPathname)
			}
			return nil
		},
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
		Unsorted: false,
	})
	if err != nil {
		logger.Log.Error("Walk failed: ", rootpath, " Error: ", err)
	}
	return list
}

func GetFolderSize(rootpath string) int64 {
	var size int64
	if _, err := os.Stat(rootpath); os.IsNotExist(err) {
		logger.Log.Error("Path not found: ", rootpath)
		return 0
	}
	err := godirwalk.Walk(rootpath, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			info, errstat := os.Stat(osPathname)
			if errstat == nil {
				size += info.Size()
			}
			return nil
		},
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
		Unsorted: true,
	})
	if err != nil {
		logger.Log.Error("Walk failed: ", rootpath, " Error: ", err)
	}
	return size
}

func GetFileSize(file string) int64 {
	info, err := os.Stat(file)
	if err != nil {
		return 0
	}
	return info.Size()
}

func CreateFolderWithSubfolders(path string, security uint32) error {
	if security == 0 {
		security = 0777
	}
	return os.MkdirAll(path, os.FileMode(security))
}

func RemoveFile(file string) error {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		logger.Log.Error("File not found: ", file)
		return err
	}
	err := os.Remove(file)
	if err != nil {
		logger.Log.Error("File could not be removed: ", file, " Error: ", err)
	} else {
		logger.Log.Debug("File removed: ", file)
	}
	return err
}

// MoveFile moves a single file to destPath. A plain rename is attempted
// first; on cross device errors (or when usebuffer is set) the file is
// copied and the source removed afterwards.
func MoveFile(sourcePath string, destPath string, usebuffer bool) error {
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		return errors.Wrap(err, "source not found")
	}
	if err := os.MkdirAll(filepath.Dir(destPath), os.FileMode(0777)); err != nil {
		return errors.Wrap(err, "create target folder")
	}
	if !usebuffer {
		if err := os.Rename(sourcePath, destPath); err == nil {
			return nil
		}
	}
	return MoveFileDriveBuffer(sourcePath, destPath)
}

func MoveFileDriveBuffer(sourcePath, destPath string) error {
	var BUFFERSIZE int64 = 1 * 1024 * 1024

	sourceFileStat, err := os.Stat(sourcePath)
	if err != nil {
		return err
	}
	if !sourceFileStat.Mode().IsRegular() {
		return errors.Errorf("%s is not a regular file", sourcePath)
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer source.Close()

	if _, err = os.Stat(destPath); err == nil {
		return errors.Errorf("file %s already exists", destPath)
	}

	destination, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer destination.Close()

	buf := make([]byte, BUFFERSIZE)
	for {
		n, errread := source.Read(buf)
		if errread != nil && errread != io.EOF {
			return errread
		}
		if n == 0 {
			break
		}
		if _, errwrite := destination.Write(buf[:n]); errwrite != nil {
			return errwrite
		}
	}
	source.Close()
	// The copy was successful, so now delete the original file
	err = os.Remove(sourcePath)
	if err != nil {
		return errors.Wrap(err, "failed removing original file")
	}
	return nil
}

// CleanUpFolder removes the folder when the remaining content is below
// CleanupsizeMB megabytes.
func CleanUpFolder(folder string, CleanupsizeMB int) {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		return
	}
	if CleanupsizeMB < 1 {
		return
	}
	leftsize := GetFolderSize(folder)
	logger.Log.Debug("Left size: ", int(leftsize/1024/1024))
	if CleanupsizeMB >= int(leftsize/1024/1024) {
		err := os.RemoveAll(folder)
		if err == nil {
			logger.Log.Debug("Folder removed: ", folder)
		} else {
			logger.Log.Error("Folder could not be removed: ", folder, " Error: ", err)
		}
	}
}
