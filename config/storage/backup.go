package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"time"
)

// DefaultBackupRetention is the default number of backups to keep
const DefaultBackupRetention = 3

// BackupManager keeps rotating copies of a file next to it
type BackupManager struct {
	// MaxBackups is the maximum number of backups to retain
	MaxBackups int
}

// NewBackupManager creates a BackupManager; non-positive values fall back to the default
func NewBackupManager(maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = DefaultBackupRetention
	}
	return &BackupManager{MaxBackups: maxBackups}
}

// backupPattern matches every backup of filePath
func backupPattern(filePath string) string {
	return filePath + ".backup-*"
}

// CreateBackup copies filePath to filePath.backup-YYYYMMDDHHMMSS.nnnnnnnnn-PID
func (bm *BackupManager) CreateBackup(filePath string) (string, error) {
	stamp := time.Now().Format("20060102150405.000000000")
	backupPath := fmt.Sprintf("%s.backup-%s-%d", filePath, stamp, syscall.Getpid())

	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}

// ListBackups returns the backups of filePath, oldest first
func (bm *BackupManager) ListBackups(filePath string) ([]string, error) {
	backups, err := filepath.Glob(backupPattern(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	// the timestamp in the name sorts lexically
	sort.Strings(backups)
	return backups, nil
}

// CleanupOldBackups removes all but the most recent MaxBackups backups
func (bm *BackupManager) CleanupOldBackups(filePath string) error {
	backups, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}

	excess := len(backups) - bm.MaxBackups
	if excess <= 0 {
		return nil
	}
	for _, old := range backups[:excess] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", old, err)
		}
	}
	return nil
}

// RestoreFromBackup copies a specific backup over filePath
func (bm *BackupManager) RestoreFromBackup(filePath, backupPath string) error {
	match, err := filepath.Match(backupPattern(filePath), backupPath)
	if err != nil {
		return fmt.Errorf("invalid backup path: %w", err)
	}
	if !match {
		return fmt.Errorf("backup path %s is not a valid backup for %s", backupPath, filePath)
	}

	if err := copyFile(backupPath, filePath); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}
	return nil
}

// RestoreFromLatestBackup restores filePath from its most recent backup
func (bm *BackupManager) RestoreFromLatestBackup(filePath string) (string, error) {
	backups, err := bm.ListBackups(filePath)
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", fmt.Errorf("no backup files found for %s", filePath)
	}

	latest := backups[len(backups)-1]
	return latest, bm.RestoreFromBackup(filePath, latest)
}

// copyFile copies src to dst, keeping the source permissions
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return dstFile.Chmod(info.Mode().Perm())
}
