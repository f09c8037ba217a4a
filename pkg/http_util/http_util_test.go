package http_util_test

import (
	"testing"

	"github.com/ghaniswara/workmatch/pkg/http_util"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	cases := map[string]string{
		`{"message":"Username is already taken"}`: "Username is already taken",
		`{"error":"invalid token"}`:               "invalid token",
		`"You can only message matched users"`:    "You can only message matched users",
		"Already liked this user":                 "Already liked this user",
		"<html>boom</html>":                       "",
		"":                                        "",
	}

	for body, want := range cases {
		assert.Equal(t, want, http_util.ErrorMessage([]byte(body)), body)
	}
}

func TestDecodeBody(t *testing.T) {
	v, err := http_util.DecodeBody[http_util.MessageResponse]([]byte(`{"message":"ok"}`))
	assert.NoError(t, err)
	assert.Equal(t, "ok", v.Message)

	_, err = http_util.DecodeBody[http_util.MessageResponse]([]byte(`{`))
	assert.Error(t, err)
}
