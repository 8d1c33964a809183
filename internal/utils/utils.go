/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatSize renders a byte count as a human-readable string using
// 1024-based units. Negative counts are sentinel values for "unknown" and
// render as N/A.
func FormatSize(sizeBytes int64) string {
	if sizeBytes < 0 {
		return "N/A"
	}
	if sizeBytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := 0
	size := float64(sizeBytes)
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}

// WriteOutputFile writes rendered content to path, creating intermediate
// directories as needed.
func WriteOutputFile(path string, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// SplitTablesFlag parses a comma-separated table-name flag into a slice,
// trimming whitespace and dropping empty entries.
func SplitTablesFlag(flag string) []string {
	if flag == "" {
		return nil
	}
	var tables []string
	for _, part := range strings.Split(flag, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tables = append(tables, part)
		}
	}
	return tables
}
