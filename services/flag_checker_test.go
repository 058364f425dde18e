// file: services/flag_checker_test.go
package services

import (
	"testing"

	"YukthiCTF/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticChecker(t *testing.T) {
	key := models.FlagKey{KeyType: models.KeyTypeStatic, Secret: "flag{abc}"}

	ok, err := staticChecker{}.Match(key, "flag{abc}")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = staticChecker{}.Match(key, "FLAG{ABC}")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = staticChecker{}.Match(key, "flag{abc} ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCaseInsensitiveChecker(t *testing.T) {
	key := models.FlagKey{KeyType: models.KeyTypeCaseInsensitive, Secret: "Flag{AbC}"}

	ok, err := caseInsensitiveChecker{}.Match(key, "flag{abc}")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = caseInsensitiveChecker{}.Match(key, "flag{abd}")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegexCheckerFullMatch(t *testing.T) {
	key := models.FlagKey{KeyType: models.KeyTypeRegex, Secret: `flag\{[0-9]+\}`}

	ok, err := regexChecker{}.Match(key, "flag{12345}")
	require.NoError(t, err)
	assert.True(t, ok)

	// 只锚定开头是不够的，带尾巴的提交必须判错
	ok, err = regexChecker{}.Match(key, "flag{12345}garbage")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = regexChecker{}.Match(key, "xflag{12345}")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegexCheckerCachesCompiledPattern(t *testing.T) {
	key := models.FlagKey{KeyType: models.KeyTypeRegex, Secret: `flag\{cache[a-z]+\}`}

	ok, err := regexChecker{}.Match(key, "flag{cachehit}")
	require.NoError(t, err)
	assert.True(t, ok)

	// 编译结果进了缓存，后续提交直接复用
	_, cached := regexCache.Load(key.Secret)
	assert.True(t, cached)

	ok, err = regexChecker{}.Match(key, "flag{cachehit}x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegexCheckerInvalidPattern(t *testing.T) {
	key := models.FlagKey{ID: 7, KeyType: models.KeyTypeRegex, Secret: `flag{[`}

	_, err := regexChecker{}.Match(key, "anything")
	require.Error(t, err)

	// 编译失败的模式不能污染缓存
	_, cached := regexCache.Load(key.Secret)
	assert.False(t, cached)
}

func TestCheckerForUnknownType(t *testing.T) {
	_, err := CheckerFor(models.KeyType("no_such_type"))
	require.Error(t, err)
}

func TestGradeSubmissionMixedKeyTypes(t *testing.T) {
	keys := []models.FlagKey{
		{KeyType: models.KeyTypeStatic, Secret: "flag{exact}"},
		{KeyType: models.KeyTypeCaseInsensitive, Secret: "flag{loose}"},
		{KeyType: models.KeyTypeRegex, Secret: `flag\{v[0-9]\}`},
	}

	for _, tc := range []struct {
		submitted string
		want      bool
	}{
		{"flag{exact}", true},
		{"FLAG{EXACT}", false}, // 只有大小写不敏感的 Key 才放宽
		{"FLAG{LOOSE}", true},
		{"flag{v7}", true},
		{"flag{v77}", false},
		{"flag{nope}", false},
	} {
		got, err := GradeSubmission(keys, tc.submitted)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "submitted %q", tc.submitted)
	}
}

func TestGradeSubmissionUnknownTypeIsError(t *testing.T) {
	keys := []models.FlagKey{{KeyType: models.KeyType("mystery"), Secret: "x"}}

	_, err := GradeSubmission(keys, "x")
	require.Error(t, err)
}

func TestGradeSubmissionNoKeys(t *testing.T) {
	ok, err := GradeSubmission(nil, "flag{abc}")
	require.NoError(t, err)
	assert.False(t, ok)
}
