package session

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		SessionCookie: "lobby_session",
		SessionExpiry: time.Hour,
	}
}

// TestGuestBufferAcrossRequests drives the buffer through a real Fiber app so
// session persistence (cookie round-trip included) is exercised.
func TestGuestBufferAcrossRequests(t *testing.T) {
	mgr := NewManager(testConfig())
	app := fiber.New()

	app.Post("/add/:game/:score", func(c *fiber.Ctx) error {
		sess, err := mgr.Get(c)
		if err != nil {
			return err
		}
		score, err := c.ParamsInt("score")
		if err != nil {
			return err
		}
		n, err := sess.AppendGuestScore(GuestScore{
			GameName:    c.Params("game"),
			Score:       score,
			SubmittedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := sess.Save(); err != nil {
			return err
		}
		return c.JSON(n)
	})
	app.Get("/buffer", func(c *fiber.Ctx) error {
		sess, err := mgr.Get(c)
		if err != nil {
			return err
		}
		return c.JSON(sess.GuestScores())
	})

	var cookie *http.Cookie
	do := func(method, path string) *http.Response {
		req := httptest.NewRequest(method, path, nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		for _, ck := range resp.Cookies() {
			if ck.Name == "lobby_session" {
				cookie = ck
			}
		}
		return resp
	}

	do("POST", "/add/pong/10")
	do("POST", "/add/snake/20")
	resp := do("POST", "/add/pong/30")

	var count int
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &count))
	assert.Equal(t, 3, count)

	resp = do("GET", "/buffer")
	var scores []GuestScore
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &scores))

	// Insertion order is preserved.
	require.Len(t, scores, 3)
	assert.Equal(t, "pong", scores[0].GameName)
	assert.Equal(t, 10, scores[0].Score)
	assert.Equal(t, "snake", scores[1].GameName)
	assert.Equal(t, "pong", scores[2].GameName)
	assert.Equal(t, 30, scores[2].Score)
	assert.False(t, scores[0].SubmittedAt.IsZero())
}

func TestIdentityAndClear(t *testing.T) {
	mgr := NewManager(testConfig())
	app := fiber.New()
	userID := uuid.New()

	app.Get("/check", func(c *fiber.Ctx) error {
		sess, err := mgr.Get(c)
		if err != nil {
			return err
		}

		if _, ok := sess.UserID(); ok {
			return fiber.NewError(fiber.StatusInternalServerError, "fresh session must be anonymous")
		}

		if _, err := sess.AppendGuestScore(GuestScore{GameName: "pong", Score: 1}); err != nil {
			return err
		}
		sess.SetUser(userID, "alice")
		sess.ClearGuestScores()

		got, ok := sess.UserID()
		if !ok || got != userID {
			return fiber.NewError(fiber.StatusInternalServerError, "identity not set")
		}
		if sess.Username() != "alice" {
			return fiber.NewError(fiber.StatusInternalServerError, "username not set")
		}
		if len(sess.GuestScores()) != 0 {
			return fiber.NewError(fiber.StatusInternalServerError, "buffer not cleared")
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/check", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
}
