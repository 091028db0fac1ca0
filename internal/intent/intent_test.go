package intent

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elite_market/internal/models"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func replay(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/?success=true", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSaveLoadClear(t *testing.T) {
	s := NewStore(false, secret)
	want := models.PendingPurchaseIntent{ProductID: "9b2f6a4e-0000-11ee-be56-0242ac120002", Type: models.PurchaseDigital}

	rec := httptest.NewRecorder()
	require.NoError(t, s.Save(rec, httptest.NewRequest(http.MethodPost, "/", nil), want))

	got := s.Load(replay(rec))
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	cleared := httptest.NewRecorder()
	require.NoError(t, s.Clear(cleared, replay(rec)))
	cookies := cleared.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Less(t, cookies[0].MaxAge, 0)
	assert.Nil(t, s.Load(replay(cleared)))
}

func TestSaveOverwrites(t *testing.T) {
	s := NewStore(false, secret)

	first := httptest.NewRecorder()
	require.NoError(t, s.Save(first, httptest.NewRequest(http.MethodPost, "/", nil),
		models.PendingPurchaseIntent{ProductID: "a", Type: models.PurchasePhysical}))

	second := httptest.NewRecorder()
	require.NoError(t, s.Save(second, replay(first),
		models.PendingPurchaseIntent{ProductID: "b", Type: models.PurchaseSubscription}))

	got := s.Load(replay(second))
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ProductID)
	assert.Equal(t, models.PurchaseSubscription, got.Type)
}

func TestLoadWithoutCookie(t *testing.T) {
	s := NewStore(false, secret)
	assert.Nil(t, s.Load(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestLoadRejectsForeignSignature(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, NewStore(false, []byte("another-secret-another-secret-00")).Save(rec,
		httptest.NewRequest(http.MethodPost, "/", nil),
		models.PendingPurchaseIntent{ProductID: "a", Type: models.PurchasePhysical}))

	assert.Nil(t, NewStore(false, secret).Load(replay(rec)))
}
