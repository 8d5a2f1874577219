package service

import (
	"testing"

	"mall/config"

	"github.com/stretchr/testify/assert"
)

func TestSendInitialPasswordEmail_Disabled(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: false})

	err := s.SendInitialPasswordEmail("user@example.com", "newbie", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮件服务未启用")
}

func TestGenerateInitialPasswordBody(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: true})

	body := s.generateInitialPasswordBody("newbie", "password123")
	assert.Contains(t, body, "newbie")
	assert.Contains(t, body, "password123")
	assert.Contains(t, body, "修改密码")
}
