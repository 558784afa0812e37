package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/filex"
	"github.com/dmitrijs2005/adboard/internal/images"
	"github.com/dmitrijs2005/adboard/internal/models"
	"github.com/dmitrijs2005/adboard/internal/submission"
	"github.com/dmitrijs2005/adboard/internal/ui"
)

// Post prompts for the ad fields and an optional image path, then publishes
// the ad. Signed out, it says so and asks nothing.
func (a *App) Post(ctx context.Context) error {
	a.sync(ctx)
	if n, ok := a.board.Controller.RequireSession(ctx); !ok {
		a.notify(n)
		return common.ErrorUnauthorized
	}

	var form submission.Form
	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Enter category", &form.Category},
		{"Enter title", &form.Title},
		{"Enter description", &form.Description},
		{"Enter price", &form.Price},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	path, err := getSimpleText(a.reader, "Enter image path (empty for none)", a.out)
	if err != nil {
		return err
	}
	if path != "" {
		up, err := a.readImage(path)
		if err != nil {
			a.notify(ui.NoticeFor(err))
			return err
		}
		form.Image = up
	}

	ad, n, err := a.board.Controller.PostAd(ctx, form)
	a.notify(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %s\n", ad.ID)
	return nil
}

func (a *App) readImage(path string) (*images.Upload, error) {
	f, fi, err := filex.OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if fi.Size() > a.config.MaxImageSize {
		return nil, images.ErrTooLarge
	}
	return images.ReadUpload(f, filepath.Base(path), "", a.config.MaxImageSize)
}

// List prints every ad, newest first.
func (a *App) List(ctx context.Context) error {
	a.sync(ctx)
	a.printAds(a.board.Catalog.All(ctx))
	return nil
}

// Mine prints the signed-in user's ads.
func (a *App) Mine(ctx context.Context) error {
	a.sync(ctx)
	u := a.board.Users.Current()
	if u == nil {
		a.notify(ui.NoticeFor(common.ErrorUnauthorized))
		return common.ErrorUnauthorized
	}
	a.printAds(a.board.Catalog.ByUser(ctx, u.Email))
	return nil
}

func (a *App) printAds(list []models.Ad) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No Ads Published Yet")
		fmt.Fprintln(a.out, "Be the first to publish an ad!")
		return
	}
	for _, ad := range list {
		fmt.Fprintf(a.out, "[%s] %s | $%s | %s\n", ad.Category, ad.Title, models.DisplayPrice(ad.Price), ad.UserEmail)
		if ad.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", ad.Description)
		}
	}
}
