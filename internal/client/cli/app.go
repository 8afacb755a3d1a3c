// Package cli provides the console's headless subcommands: scripted login,
// logout, uploads, and report downloads that run without the full-screen UI.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/forensicvideo/console/internal/client/api"
	"github.com/forensicvideo/console/internal/client/auth"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/query"
	"github.com/forensicvideo/console/internal/client/session"
	"github.com/forensicvideo/console/internal/logging"
	"github.com/google/uuid"
)

// ErrUsage is returned for an unknown subcommand or bad arguments.
var ErrUsage = errors.New("usage: console [login|logout|whoami|upload FILE|report ID OUT|faces VIDEO_ID|search FACE_ID|poi FACE_ID LABEL [NOTES...]]")

// App runs one headless subcommand end to end.
type App struct {
	store  session.Store
	gw     api.Gateway
	ctrl   *auth.Controller
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(store session.Store, gw api.Gateway, ctrl *auth.Controller, log logging.Logger) *App {
	return &App{
		store:  store,
		gw:     gw,
		ctrl:   ctrl,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run dispatches the subcommand in args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "login":
		return a.login(ctx)
	case "logout":
		return a.ctrl.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "upload":
		if len(args) < 2 {
			return ErrUsage
		}
		return a.upload(ctx, args[1])
	case "report":
		if len(args) < 3 {
			return ErrUsage
		}
		return a.downloadReport(ctx, args[1], args[2])
	case "faces":
		if len(args) < 2 {
			return a.listFaces(ctx)
		}
		return a.faces(ctx, args[1])
	case "poi":
		if len(args) < 3 {
			return ErrUsage
		}
		return a.markPOI(ctx, args[1], args[2], args[3:])
	case "search":
		if len(args) < 2 {
			return ErrUsage
		}
		return a.searchFaces(ctx, args[1])
	default:
		return ErrUsage
	}
}

func (a *App) login(ctx context.Context) error {
	email, err := ReadLine(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := ReadPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.ctrl.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	user := a.store.User(ctx)
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", user.FullName, user.Email, user.Role)
	if exp := session.TokenExpiresAt(a.store.Token(ctx)); !exp.IsZero() {
		fmt.Fprintf(a.out, "Session expires %s\n", exp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	up := query.NewUpload(query.NewCache(), a.gw, func(pct int) {
		fmt.Fprintf(a.out, "\rUploading... %3d%%", pct)
	})

	video, err := up.Do(ctx, query.UploadRequest{
		Filename: filepath.Base(path),
		Data:     f,
		Size:     info.Size(),
	})
	fmt.Fprintln(a.out)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Fprintf(a.out, "Uploaded %s (%s)\n", video.Filename, video.ID)
	return nil
}

func (a *App) downloadReport(ctx context.Context, idArg, outPath string) error {
	id, err := uuid.Parse(idArg)
	if err != nil {
		return fmt.Errorf("bad report id: %w", err)
	}

	report, err := a.gw.Report(ctx, id)
	if err != nil {
		return err
	}
	if report.Status != "completed" {
		return fmt.Errorf("report is %s, not ready for download", report.Status)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := a.gw.DownloadReport(ctx, id, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %d bytes to %s\n", n, outPath)
	return nil
}

func (a *App) faces(ctx context.Context, videoArg string) error {
	videoID, err := uuid.Parse(videoArg)
	if err != nil {
		return fmt.Errorf("bad video id: %w", err)
	}

	faces, err := a.gw.VideoFaces(ctx, videoID)
	if err != nil {
		return err
	}
	a.printFaces(faces, len(faces))
	return nil
}

func (a *App) listFaces(ctx context.Context) error {
	page, err := a.gw.Faces(ctx, uuid.Nil, 1, 50)
	if err != nil {
		return err
	}
	a.printFaces(page.Items, page.Total)
	return nil
}

func (a *App) printFaces(faces []models.Face, total int) {
	if len(faces) == 0 {
		fmt.Fprintln(a.out, "No faces detected.")
		return
	}
	for _, face := range faces {
		marker := " "
		if face.IsPOI {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  frame %-6d conf %.2f  %s\n",
			marker, face.ID, face.FrameNumber, face.Confidence, face.POILabel)
	}
	fmt.Fprintf(a.out, "%d of %d faces\n", len(faces), total)
}

func (a *App) markPOI(ctx context.Context, faceArg, label string, notes []string) error {
	faceID, err := uuid.Parse(faceArg)
	if err != nil {
		return fmt.Errorf("bad face id: %w", err)
	}

	err = a.gw.MarkFacePOI(ctx, models.MarkPOIRequest{
		FaceEmbeddingID: faceID,
		POILabel:        label,
		Notes:           strings.Join(notes, " "),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Marked %s as POI %q\n", faceID, label)
	return nil
}

func (a *App) searchFaces(ctx context.Context, faceArg string) error {
	faceID, err := uuid.Parse(faceArg)
	if err != nil {
		return fmt.Errorf("bad face id: %w", err)
	}

	matches, err := a.gw.SearchFaces(ctx, models.FaceSearchRequest{
		FaceEmbeddingID: faceID,
		Threshold:       0.8,
		MaxResults:      20,
	})
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matches above threshold.")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(a.out, "%.3f  %s  video %s frame %d\n",
			m.Similarity, m.Face.ID, m.Face.VideoID, m.Face.FrameNumber)
	}
	return nil
}
