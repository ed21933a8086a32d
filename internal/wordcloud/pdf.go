// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wordcloud

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExportPDF wraps a rendered PNG into a single-page PDF and validates the result
func ExportPDF(pngPath, pdfPath string) error {
	conf := model.NewDefaultConfiguration()

	pngPath = filepath.Clean(pngPath)
	pdfPath = filepath.Clean(pdfPath)

	// Importing into an existing file appends pages; start fresh every run.
	if err := os.Remove(pdfPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", pdfPath, err)
	}

	if err := api.ImportImagesFile([]string{pngPath}, pdfPath, pdfcpu.DefaultImportConfig(), conf); err != nil {
		return fmt.Errorf("failed to import %s into PDF: %w", pngPath, err)
	}
	if err := api.ValidateFile(pdfPath, conf); err != nil {
		return fmt.Errorf("generated PDF %s failed validation: %w", pdfPath, err)
	}
	return nil
}
