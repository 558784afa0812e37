package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/adboard/internal/board"
	"github.com/dmitrijs2005/adboard/internal/config"
	"github.com/dmitrijs2005/adboard/internal/kvstore"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageBackend = config.StorageMemory
	cfg.ImageStrategy = config.ImagePlaceholder
	cfg.PlaceholderImageURL = "/none.png"
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, script ...string) (*App, *bytes.Buffer) {
	t.Helper()
	capturePrintln(t)
	stubTerminal(t, false, nil)

	b, err := board.NewWithStore(context.Background(), cfg, kvstore.NewMemoryStore(), logging.Discard())
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	return newApp(cfg, b, logging.Discard(), in, &out), &out
}

var signupAndSignin = []string{
	"signup", "Ada", "Lovelace", "ada@x.com", "pw1",
	"signin", "ada@x.com", "pw1",
}

func TestApp_FullSession(t *testing.T) {
	script := append([]string{}, signupAndSignin...)
	script = append(script,
		"post", "Cars", "Volvo", "Runs fine", "1500", "",
		"list",
		"mine",
		"logout",
		"exit",
	)
	app, out := newTestApp(t, testConfig(), script...)
	app.Run(context.Background())

	got := out.String()
	for _, want := range []string{
		"[success] Signup Successful! Now sign in.",
		"[success] Welcome Back! Hello Ada Lovelace",
		"[success] Ad Published!",
		"[Cars] Volvo | $1500.00 | ada@x.com",
		"    Runs fine",
		"[info] Logged Out",
	} {
		assert.Contains(t, got, want)
	}
	assert.Nil(t, app.board.Users.Current())

	all := app.board.Catalog.All(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "/none.png", all[0].ImageURL)
	assert.Equal(t, "1500.00", all[0].Price)
}

func TestApp_PostSignedOut(t *testing.T) {
	app, out := newTestApp(t, testConfig(), "post", "mine", "exit")
	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "[warning] Authentication Required Please login to post an ad!")
	assert.Contains(t, got, "[warning] Please Login")
	assert.NotContains(t, got, "Enter category")
	assert.Empty(t, app.board.Catalog.All(context.Background()))
}

func TestApp_SignupDuplicateAndBadSignin(t *testing.T) {
	app, out := newTestApp(t, testConfig(),
		"signup", "Ada", "Lovelace", "ada@x.com", "pw1",
		"signup", "Ada", "Again", "ada@x.com", "pw2",
		"signin", "ada@x.com", "wrong",
		"exit",
	)
	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "[error] Duplicate Email User already exists!")
	assert.Contains(t, got, "[error] Invalid Credentials")
	assert.Len(t, app.board.Users.Users(), 1)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "", app.getStatus())
}

func TestApp_PostValidation(t *testing.T) {
	script := append([]string{}, signupAndSignin...)
	script = append(script,
		"post", "Cars", "", "desc", "10", "",
		"post", "Cars", "Volvo", "desc", "cheap", "",
		"exit",
	)
	app, out := newTestApp(t, testConfig(), script...)
	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Please fill in the")
	assert.Contains(t, got, "Please enter a valid price!")
	assert.Empty(t, app.board.Catalog.All(context.Background()))
	assert.Equal(t, " (Ada Lovelace)", app.getStatus())
}

func TestApp_PostWithEmbeddedImage(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "car.png")
	require.NoError(t, os.WriteFile(png, append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...), 0o600))

	cfg := testConfig()
	cfg.ImageStrategy = config.ImageEmbedded

	script := append([]string{}, signupAndSignin...)
	script = append(script,
		"post", "Cars", "Volvo", "desc", "10", png,
		"post", "Cars", "Saab", "desc", "10", filepath.Join(dir, "missing.png"),
		"exit",
	)
	app, out := newTestApp(t, cfg, script...)
	app.Run(context.Background())

	all := app.board.Catalog.All(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "Volvo", all[0].Title)
	assert.True(t, strings.HasPrefix(all[0].ImageURL, "data:image/png;base64,"), all[0].ImageURL)
	assert.Contains(t, out.String(), "[error] Something Went Wrong")
}

func TestApp_ListEmpty(t *testing.T) {
	app, out := newTestApp(t, testConfig(), "list", "exit")
	app.Run(context.Background())

	assert.Contains(t, out.String(), "No Ads Published Yet")
}

func TestApp_SeesSessionFromAnotherProcess(t *testing.T) {
	cfg := testConfig()
	store := kvstore.NewMemoryStore()
	ctx := context.Background()

	web, err := board.NewWithStore(ctx, cfg, store, logging.Discard())
	require.NoError(t, err)
	_, err = web.Users.Signup(ctx, "Ada", "Lovelace", "ada@x.com", "pw1")
	require.NoError(t, err)

	capturePrintln(t)
	stubTerminal(t, false, nil)
	b, err := board.NewWithStore(ctx, cfg, store, logging.Discard())
	require.NoError(t, err)

	_, err = web.Users.Signin(ctx, "ada@x.com", "pw1")
	require.NoError(t, err)

	var out bytes.Buffer
	app := newApp(cfg, b, logging.Discard(), strings.NewReader("post\nCars\nVolvo\ndesc\n10\n\nexit\n"), &out)
	app.Run(ctx)

	assert.Contains(t, out.String(), "[success] Ad Published!")
	require.NoError(t, web.Catalog.Reload(ctx))
	assert.Len(t, web.Catalog.All(ctx), 1)
}
