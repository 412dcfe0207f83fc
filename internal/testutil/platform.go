// Package testutil holds in-memory doubles shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"eventbot/internal/ports/output"
)

var _ output.Platform = (*FakePlatform)(nil)

// Message is a message posted through FakePlatform.
type Message struct {
	ID        string
	ChannelID string
	Content   string
	Embed     *output.Embed
	Reactions map[string][]string // emoji -> user ids
}

// Channel is a channel created through FakePlatform.
type Channel struct {
	ID      string
	GuildID string
	Name    string
	Topic   string
	RoleID  string
	Private bool
}

// FakePlatform records every request and keeps just enough state for
// assertions. Errors can be injected per method name.
type FakePlatform struct {
	mu sync.Mutex

	BotID        string
	DisplayNames map[string]string   // user id -> display name
	MemberRoles  map[string][]string // user id -> role names
	Errors       map[string]error    // method name -> error

	Calls    []string
	Roles    map[string]string   // role id -> name
	Granted  map[string][]string // role id -> user ids
	Channels map[string]*Channel
	Messages map[string]*Message
	Order    []string // message ids in posting order

	next int
}

func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		BotID:        "bot",
		DisplayNames: map[string]string{},
		MemberRoles:  map[string][]string{},
		Errors:       map[string]error{},
		Roles:        map[string]string{},
		Granted:      map[string][]string{},
		Channels:     map[string]*Channel{},
		Messages:     map[string]*Message{},
	}
}

// record logs the call and returns the injected error, if any. Callers hold mu.
func (p *FakePlatform) record(method string, args ...string) error {
	p.Calls = append(p.Calls, method+"("+strings.Join(args, ",")+")")
	return p.Errors[method]
}

func (p *FakePlatform) id(prefix string) string {
	p.next++
	return fmt.Sprintf("%s%d", prefix, p.next)
}

// FailOn makes every later call to method return err.
func (p *FakePlatform) FailOn(method string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Errors[method] = err
}

// CallsTo returns the recorded calls of method, in order.
func (p *FakePlatform) CallsTo(method string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, c := range p.Calls {
		if strings.HasPrefix(c, method+"(") {
			out = append(out, c)
		}
	}
	return out
}

// Message returns a copy of the message with the given id.
func (p *FakePlatform) Message(id string) (Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.Messages[id]
	if !ok {
		return Message{}, false
	}
	return *m, true
}

// LastMessage returns the most recent message still present in channelID.
func (p *FakePlatform) LastMessage(channelID string) (Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.Order) - 1; i >= 0; i-- {
		if m, ok := p.Messages[p.Order[i]]; ok && m.ChannelID == channelID {
			return *m, true
		}
	}
	return Message{}, false
}

// HasRole reports whether userID currently holds roleID.
func (p *FakePlatform) HasRole(roleID, userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, u := range p.Granted[roleID] {
		if u == userID {
			return true
		}
	}
	return false
}

func (p *FakePlatform) BotUserID() string { return p.BotID }

func (p *FakePlatform) CreateRole(_ context.Context, guildID, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("CreateRole", guildID, name); err != nil {
		return "", err
	}
	id := p.id("role-")
	p.Roles[id] = name
	return id, nil
}

func (p *FakePlatform) DeleteRole(_ context.Context, guildID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteRole", guildID, roleID); err != nil {
		return err
	}
	if _, ok := p.Roles[roleID]; !ok {
		return output.ErrResourceNotFound
	}
	delete(p.Roles, roleID)
	delete(p.Granted, roleID)
	return nil
}

func (p *FakePlatform) AddMemberRole(_ context.Context, guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("AddMemberRole", guildID, userID, roleID); err != nil {
		return err
	}
	if _, ok := p.Roles[roleID]; !ok {
		return output.ErrResourceNotFound
	}
	p.Granted[roleID] = append(p.Granted[roleID], userID)
	return nil
}

func (p *FakePlatform) RemoveMemberRole(_ context.Context, guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("RemoveMemberRole", guildID, userID, roleID); err != nil {
		return err
	}
	users := p.Granted[roleID]
	for i, u := range users {
		if u == userID {
			p.Granted[roleID] = append(users[:i:i], users[i+1:]...)
			break
		}
	}
	return nil
}

func (p *FakePlatform) MemberRoleNames(_ context.Context, guildID, userID string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("MemberRoleNames", guildID, userID); err != nil {
		return nil, err
	}
	return append([]string(nil), p.MemberRoles[userID]...), nil
}

func (p *FakePlatform) DisplayName(_ context.Context, guildID, userID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DisplayName", guildID, userID); err != nil {
		return "", err
	}
	name, ok := p.DisplayNames[userID]
	if !ok {
		return "", output.ErrResourceNotFound
	}
	return name, nil
}

func (p *FakePlatform) CreatePrivateChannel(_ context.Context, guildID, name, topic, roleID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("CreatePrivateChannel", guildID, name, roleID); err != nil {
		return "", err
	}
	id := p.id("channel-")
	p.Channels[id] = &Channel{ID: id, GuildID: guildID, Name: name, Topic: topic, RoleID: roleID, Private: true}
	return id, nil
}

func (p *FakePlatform) ResetChannelPermissions(_ context.Context, guildID, channelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("ResetChannelPermissions", guildID, channelID); err != nil {
		return err
	}
	ch, ok := p.Channels[channelID]
	if !ok {
		return output.ErrResourceNotFound
	}
	ch.Private = false
	return nil
}

func (p *FakePlatform) DeleteChannel(_ context.Context, channelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteChannel", channelID); err != nil {
		return err
	}
	if _, ok := p.Channels[channelID]; !ok {
		return output.ErrResourceNotFound
	}
	delete(p.Channels, channelID)
	return nil
}

func (p *FakePlatform) post(channelID, content string, embed *output.Embed) string {
	id := p.id("msg-")
	p.Messages[id] = &Message{
		ID:        id,
		ChannelID: channelID,
		Content:   content,
		Embed:     embed,
		Reactions: map[string][]string{},
	}
	p.Order = append(p.Order, id)
	return id
}

func (p *FakePlatform) SendText(_ context.Context, channelID, content string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("SendText", channelID, content); err != nil {
		return "", err
	}
	return p.post(channelID, content, nil), nil
}

func (p *FakePlatform) SendEmbed(_ context.Context, channelID string, embed output.Embed) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("SendEmbed", channelID, embed.Title); err != nil {
		return "", err
	}
	return p.post(channelID, "", &embed), nil
}

func (p *FakePlatform) EditEmbed(_ context.Context, channelID, messageID string, embed output.Embed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("EditEmbed", channelID, messageID); err != nil {
		return err
	}
	m, ok := p.Messages[messageID]
	if !ok || m.ChannelID != channelID {
		return output.ErrResourceNotFound
	}
	m.Embed = &embed
	return nil
}

func (p *FakePlatform) DeleteMessage(_ context.Context, channelID, messageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteMessage", channelID, messageID); err != nil {
		return err
	}
	m, ok := p.Messages[messageID]
	if !ok || m.ChannelID != channelID {
		return output.ErrResourceNotFound
	}
	delete(p.Messages, messageID)
	return nil
}

func (p *FakePlatform) AddReaction(_ context.Context, channelID, messageID, emoji string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("AddReaction", channelID, messageID, emoji); err != nil {
		return err
	}
	m, ok := p.Messages[messageID]
	if !ok {
		return output.ErrResourceNotFound
	}
	m.Reactions[emoji] = append(m.Reactions[emoji], p.BotID)
	return nil
}

func (p *FakePlatform) RemoveReaction(_ context.Context, channelID, messageID, emoji, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("RemoveReaction", channelID, messageID, emoji, userID); err != nil {
		return err
	}
	m, ok := p.Messages[messageID]
	if !ok {
		return output.ErrResourceNotFound
	}
	users := m.Reactions[emoji]
	for i, u := range users {
		if u == userID {
			m.Reactions[emoji] = append(users[:i:i], users[i+1:]...)
			break
		}
	}
	return nil
}
