package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// moveOverwriteFlag makes MoveTo replace an existing file at the
// destination instead of failing.
const moveOverwriteFlag = 1

// folderFile is one entry of a folder's Files collection.
type folderFile struct {
	Name              string `json:"Name"`
	ServerRelativeURL string `json:"ServerRelativeUrl"`
}

type folderFilesResponse struct {
	D struct {
		Results []folderFile `json:"results"`
	} `json:"d"`
}

// FindTextFile returns the first .txt file in the point's folder.
// The match is case-insensitive. Returns domain.ErrNoTextFile when the
// folder holds no text file at all.
func (c *Client) FindTextFile(ctx context.Context, pointNumber string) (*domain.FileInfo, error) {
	folderURL := fmt.Sprintf("%s/GetFolderByServerRelativeUrl('%s')/Files",
		c.webURL(), c.serverRelativePath(pointNumber))

	data, err := c.do(ctx, http.MethodGet, folderURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list folder files: %w", err)
	}

	var payload folderFilesResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode folder files: %w", err)
	}

	for _, f := range payload.D.Results {
		if strings.HasSuffix(strings.ToLower(f.Name), ".txt") {
			return &domain.FileInfo{
				Name:               f.Name,
				ServerRelativePath: f.ServerRelativeURL,
			}, nil
		}
	}

	return nil, fmt.Errorf("folder %s: %w", pointNumber, domain.ErrNoTextFile)
}

// FileContent downloads the raw text of a file in the point's folder.
func (c *Client) FileContent(ctx context.Context, pointNumber, fileName string) (string, error) {
	fileURL := fmt.Sprintf("%s/GetFileByServerRelativeUrl('%s')/$value",
		c.webURL(), c.serverRelativePath(pointNumber, fileName))

	headers := map[string]string{"Accept": "text/plain"}
	data, err := c.do(ctx, http.MethodGet, fileURL, nil, headers)
	if err != nil {
		return "", fmt.Errorf("fetch file content: %w", err)
	}
	return string(data), nil
}

// CreateFile uploads a new file into the point's folder.
func (c *Client) CreateFile(ctx context.Context, pointNumber, fileName, content string) error {
	createURL := fmt.Sprintf("%s/GetFolderByServerRelativeUrl('%s')/Files/Add(url='%s')",
		c.webURL(), c.serverRelativePath(pointNumber), url.PathEscape(fileName))

	headers := map[string]string{"Content-Type": "text/plain;charset=utf-8"}
	if _, err := c.do(ctx, http.MethodPost, createURL, []byte(content), headers); err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// UpdateFile replaces the content of an existing file in the point's
// folder.
func (c *Client) UpdateFile(ctx context.Context, pointNumber, fileName, content string) error {
	fileURL := fmt.Sprintf("%s/GetFileByServerRelativeUrl('%s')/$value",
		c.webURL(), c.serverRelativePath(pointNumber, fileName))

	headers := map[string]string{
		"Content-Type":  "text/plain;charset=utf-8",
		"X-HTTP-Method": "PUT",
		"If-Match":      "*",
	}
	if _, err := c.do(ctx, http.MethodPut, fileURL, []byte(content), headers); err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	return nil
}

// RenameFile moves a file to a new name inside the same point folder,
// overwriting any file already holding that name.
func (c *Client) RenameFile(ctx context.Context, pointNumber, oldName, newName string) error {
	moveURL := fmt.Sprintf("%s/GetFileByServerRelativeUrl('%s')/MoveTo(newUrl='%s',flags=%d)",
		c.webURL(), c.serverRelativePath(pointNumber, oldName),
		c.serverRelativePath(pointNumber, newName), moveOverwriteFlag)

	headers := map[string]string{
		"Content-Type":  acceptVerboseJSON,
		"X-HTTP-Method": "POST",
	}
	if _, err := c.do(ctx, http.MethodPost, moveURL, nil, headers); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}
