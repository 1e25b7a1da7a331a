package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"villagevisits/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AccountCreated(t *testing.T) {
	t.Parallel()
	msg, err := Render("noreply@villagevisits.rw", Message{
		To:       "chief@example.rw",
		Template: AccountCreated,
		Data:     Data{Name: "Ann", Email: "chief@example.rw", Password: "Xy7<pass>word", Village: "Ngoma"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Your village chief account is ready")
	assert.Contains(t, out, "text/html")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "chief@example.rw")
}

func TestRender_UnknownTemplate(t *testing.T) {
	t.Parallel()
	_, err := Render("a@b.rw", Message{To: "c@d.rw", Template: "nope"})
	assert.Error(t, err)
}

func TestRender_BadRecipient(t *testing.T) {
	t.Parallel()
	_, err := Render("a@b.rw", Message{To: "not an address", Template: ResidentRegistered})
	assert.Error(t, err)
}

func TestTemplates_HTMLEscapesData(t *testing.T) {
	t.Parallel()
	all, err := templates()
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, all[ResidentRegistered].html.ExecuteTemplate(&b, "html", Data{Name: "<script>"}))
	assert.NotContains(t, b.String(), "<script>")
	assert.Contains(t, b.String(), "&lt;script&gt;")
}

type countObs struct {
	mu      sync.Mutex
	ok, bad int
}

func (c *countObs) IncMail(_ string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.ok++
	} else {
		c.bad++
	}
}

func TestDispatcher_DeliversAsync(t *testing.T) {
	t.Parallel()
	mem := &Memory{}
	obs := &countObs{}
	d, err := NewDispatcher(mem, 2, *logger.Named("mail"), obs)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		d.Dispatch(Message{To: "r@example.rw", Template: ResidentRegistered})
	}
	require.Eventually(t, func() bool { return len(mem.Sent()) == 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, d.Close(time.Second))

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, 2, obs.ok)
}

func TestDispatcher_SendFailureCounted(t *testing.T) {
	t.Parallel()
	mem := &Memory{Err: errors.New("smtp down")}
	obs := &countObs{}
	d, err := NewDispatcher(mem, 1, *logger.Named("mail"), obs)
	require.NoError(t, err)

	d.Dispatch(Message{To: "r@example.rw", Template: AccountCreated})
	require.Eventually(t, func() bool {
		obs.mu.Lock()
		defer obs.mu.Unlock()
		return obs.bad == 1
	}, 2*time.Second, 10*time.Millisecond)
	_ = d.Close(time.Second)
}

type blockingSender struct{ release chan struct{} }

func (b blockingSender) Send(ctx context.Context, _ Message) error {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}

func TestDispatcher_FullPoolDrops(t *testing.T) {
	t.Parallel()
	bs := blockingSender{release: make(chan struct{})}
	obs := &countObs{}
	d, err := NewDispatcher(bs, 1, *logger.Named("mail"), obs)
	require.NoError(t, err)

	d.Dispatch(Message{Template: AccountCreated})
	require.Eventually(t, func() bool { return d.Running() == 1 }, time.Second, 5*time.Millisecond)
	d.Dispatch(Message{Template: AccountCreated})

	obs.mu.Lock()
	assert.Equal(t, 1, obs.bad)
	obs.mu.Unlock()

	close(bs.release)
	_ = d.Close(time.Second)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Host: "smtp.example.rw"}.Enabled())
}
