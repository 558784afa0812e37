// Package web is the HTTP front end of the board: the server-rendered page,
// its form posts and a small JSON read API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/images"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/models"
	"github.com/dmitrijs2005/adboard/internal/submission"
	"github.com/dmitrijs2005/adboard/internal/ui"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// multipartMemory is the part of a multipart body kept in memory, the rest
// spills to temporary files.
const multipartMemory = 8 << 20

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// Catalog is the read side of ads.Catalog.
type Catalog interface {
	All(ctx context.Context) []models.Ad
	ByUser(ctx context.Context, email string) []models.Ad
}

// Session reports the signed-in user.
type Session interface {
	Current() *models.User
}

type Handler struct {
	ctrl         *ui.Controller
	catalog      Catalog
	session      Session
	logger       logging.Logger
	maxImageSize int64
}

func NewHandler(ctrl *ui.Controller, catalog Catalog, session Session, logger logging.Logger, maxImageSize int64) *Handler {
	return &Handler{
		ctrl:         ctrl,
		catalog:      catalog,
		session:      session,
		logger:       logger.With("module", "web"),
		maxImageSize: maxImageSize,
	}
}

// NewEngine builds the gin engine with every route registered.
func NewEngine(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	r.SetHTMLTemplate(templates)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	b := r.Group("/", h.sync)
	{
		b.GET("/", h.Board)
		b.POST("/signup", h.Signup)
		b.POST("/signin", h.Signin)
		b.POST("/logout", h.Logout)
		b.GET("/post", h.PostPage)
		b.POST("/ads", h.PostAd)
	}

	api := r.Group("/api", h.sync)
	{
		api.GET("/ads", h.ListAds)
		api.GET("/users/:email/ads", h.ListUserAds)
		api.GET("/session", h.GetSession)
	}
}

// sync picks up what other processes wrote to the store before each request.
func (h *Handler) sync(c *gin.Context) {
	h.ctrl.Sync(c.Request.Context())
	c.Next()
}

type pageView struct {
	State     ui.State
	Notice    *ui.Notice
	Autofocus string
}

func (h *Handler) render(c *gin.Context, status int, name string, notice *ui.Notice) {
	page := h.ctrl.Page()
	if notice == nil {
		notice = page.TakeFlash()
	}
	state := page.Snapshot()

	var focus string
	for _, modal := range []string{ui.SignupModal, ui.SigninModal} {
		if state.Open[modal] {
			focus = ui.FocusField(modal)
		}
	}

	c.HTML(status, name, pageView{State: state, Notice: notice, Autofocus: focus})
}

// redirect stores notice for the next page and sends the browser to location.
func (h *Handler) redirect(c *gin.Context, location string, notice ui.Notice) {
	h.ctrl.Page().Flash(notice)
	c.Redirect(http.StatusSeeOther, location)
}

// Board renders the main page. ?modal=<id> opens that dialog.
func (h *Handler) Board(c *gin.Context) {
	ctx := c.Request.Context()
	page := h.ctrl.Page()

	h.ctrl.Refresh(ctx)
	for _, modal := range []string{ui.SigninModal, ui.SignupModal, ui.PostAdModal} {
		page.Close(modal)
	}
	if modal := c.Query("modal"); modal != "" {
		page.Open(modal)
	}
	h.render(c, http.StatusOK, "board.html", nil)
}

func (h *Handler) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	page := h.ctrl.Page()

	first, last := c.PostForm("firstName"), c.PostForm("lastName")
	email, password := c.PostForm("email"), c.PostForm("password")
	page.SetValue(ui.SignupFirstName, first)
	page.SetValue(ui.SignupLastName, last)
	page.SetValue(ui.SignupEmail, email)

	notice, err := h.ctrl.Signup(ctx, first, last, email, password)
	if err != nil {
		status, _ := StatusFor(err)
		h.render(c, status, "board.html", &notice)
		return
	}
	h.redirect(c, "/?modal="+ui.SigninModal, notice)
}

func (h *Handler) Signin(c *gin.Context) {
	ctx := c.Request.Context()
	page := h.ctrl.Page()

	email, password := c.PostForm("email"), c.PostForm("password")
	page.SetValue(ui.SigninEmail, email)

	notice, err := h.ctrl.Signin(ctx, email, password)
	if err != nil {
		status, _ := StatusFor(err)
		h.render(c, status, "board.html", &notice)
		return
	}
	h.redirect(c, "/", notice)
}

// Logout ends the session and lands on the board with the sign-in dialog
// open.
func (h *Handler) Logout(c *gin.Context) {
	notice, err := h.ctrl.Logout(c.Request.Context())
	if err != nil {
		status, _ := StatusFor(err)
		h.render(c, status, "board.html", &notice)
		return
	}
	h.redirect(c, "/?modal="+ui.SigninModal, notice)
}

// PostPage shows the submission form, or sends signed-out users to sign in.
func (h *Handler) PostPage(c *gin.Context) {
	notice, ok := h.ctrl.RequireSession(c.Request.Context())
	if !ok {
		h.redirect(c, "/?modal="+ui.SigninModal, notice)
		return
	}
	h.render(c, http.StatusOK, "post.html", nil)
}

// PostAd accepts the multipart submission form.
func (h *Handler) PostAd(c *gin.Context) {
	ctx := c.Request.Context()
	page := h.ctrl.Page()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageSize+1<<20)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.renderPostError(c, parseError(err))
		return
	}
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}

	form := submission.Form{
		Category:    c.PostForm("category"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
	}
	page.SetValue(ui.FieldCategory, form.Category)
	page.SetValue(ui.FieldTitle, form.Title)
	page.SetValue(ui.FieldDesc, form.Description)
	page.SetValue(ui.FieldPrice, form.Price)

	up, err := h.readImage(c)
	if err != nil {
		h.renderPostError(c, err)
		return
	}
	form.Image = up

	_, notice, err := h.ctrl.PostAd(ctx, form)
	if err != nil {
		status, _ := StatusFor(err)
		if errors.Is(err, common.ErrorUnauthorized) {
			h.render(c, status, "board.html", &notice)
			return
		}
		h.render(c, status, "post.html", &notice)
		return
	}
	h.redirect(c, "/", notice)
}

func (h *Handler) renderPostError(c *gin.Context, err error) {
	notice := ui.NoticeFor(err)
	status, _ := StatusFor(err)
	h.render(c, status, "post.html", &notice)
}

// parseError classifies a failed multipart parse. Both outcomes are client
// errors.
func parseError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return images.ErrTooLarge
	}
	return fmt.Errorf("%w: malformed form: %w", common.ErrorValidation, err)
}

func (h *Handler) readImage(c *gin.Context) (*images.Upload, error) {
	fh, err := c.FormFile("imageFile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, parseError(err)
	}
	if fh.Size > h.maxImageSize {
		return nil, images.ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return images.ReadUpload(f, fh.Filename, fh.Header.Get("Content-Type"), h.maxImageSize)
}

func (h *Handler) ListAds(c *gin.Context) {
	success(c, h.catalog.All(c.Request.Context()))
}

func (h *Handler) ListUserAds(c *gin.Context) {
	success(c, h.catalog.ByUser(c.Request.Context(), c.Param("email")))
}

type sessionView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
}

func (h *Handler) GetSession(c *gin.Context) {
	u := h.session.Current()
	if u == nil {
		status, code := StatusFor(common.ErrorUnauthorized)
		failure(c, status, code, "not signed in")
		return
	}
	success(c, sessionView{FirstName: u.FirstName, LastName: u.LastName, FullName: u.FullName, Email: u.Email})
}
