package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	// 所有者本人
	assert.True(t, IsOwner(1, 1))

	// 其他用户
	assert.False(t, IsOwner(2, 1))

	// 匿名身份永远不是所有者，即使资源记录异常地带着零值所有者
	assert.False(t, IsOwner(0, 1))
	assert.False(t, IsOwner(0, 0))
}
