package jwt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"AeroComply/pkg/back"
	"AeroComply/pkg/util/myjwt"
	"AeroComply/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := myjwt.NewSigner("secret", "", 1)
	r := gin.New()
	r.GET("/me", Auth(signer), func(c *gin.Context) {
		back.Success(c, c.GetString("uuid"))
	})

	token, err := signer.GenerateToken("u-7", "mechanic")
	require.NoError(t, err)

	cases := []struct {
		header string
		code   int
	}{
		{"", xerr.Unauthorized},
		{"Token abc", xerr.Unauthorized},
		{"Bearer not-a-jwt", xerr.Unauthorized},
		{"Bearer " + token, xerr.OK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)

		var resp back.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Code, tc.header)
		if tc.code == xerr.OK {
			assert.Equal(t, "u-7", resp.Data)
		}
	}
}
