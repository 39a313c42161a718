package storage

import (
	"context"
	"io"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Uploader is the boundary to the cloud storage provider. Credentials
// come in with every call; nothing is retained between requests.
type Uploader interface {
	EnsureFolder(ctx context.Context, token *oauth2.Token, name string) (string, error)
	UploadFile(ctx context.Context, token *oauth2.Token, folderID, filename, mimeType string, content io.Reader) (string, error)
}

// Drive talks to Google Drive on behalf of whichever user's token it
// is handed. A fresh service is built per call from that token.
type Drive struct {
	opts []option.ClientOption
}

func NewDrive(opts ...option.ClientOption) *Drive {
	return &Drive{opts: opts}
}

func (d *Drive) service(ctx context.Context, token *oauth2.Token) (*drive.Service, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, d.opts...)
	return drive.NewService(ctx, opts...)
}

// EnsureFolder creates a folder with the given display name. It does
// not look for an existing folder first, so repeated calls with the
// same name yield distinct folders sharing a display name.
func (d *Drive) EnsureFolder(ctx context.Context, token *oauth2.Token, name string) (string, error) {
	svc, err := d.service(ctx, token)
	if err != nil {
		return "", err
	}

	folder, err := svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}).Fields("id").Do()
	if err != nil {
		return "", err
	}

	return folder.Id, nil
}

// UploadFile streams content into the given folder and returns the
// created file's id.
func (d *Drive) UploadFile(ctx context.Context, token *oauth2.Token, folderID, filename, mimeType string, content io.Reader) (string, error) {
	svc, err := d.service(ctx, token)
	if err != nil {
		return "", err
	}

	file, err := svc.Files.Create(&drive.File{
		Name:    filename,
		Parents: []string{folderID},
	}).Media(content, googleapi.ContentType(mimeType)).Fields("id").Do()
	if err != nil {
		return "", err
	}

	return file.Id, nil
}
