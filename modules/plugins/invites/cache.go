package invites

import (
	"sync"

	"github.com/Seklfreak/robyul-invites/models"
	"github.com/bwmarrin/discordgo"
)

// InviteCache maps invite codes to their last known state.
// It is safe for concurrent use, every method locks for its full duration.
type InviteCache struct {
	sync.RWMutex
	storage map[string]*models.InviteRecord
	// bumped on every purge of a guild
	epochs map[string]uint64
}

func NewInviteCache() *InviteCache {
	return &InviteCache{
		storage: make(map[string]*models.InviteRecord),
		epochs:  make(map[string]uint64),
	}
}

// Put inserts or overwrites the record for $code
func (c *InviteCache) Put(code, guildID string, uses int) {
	c.Lock()
	c.storage[code] = &models.InviteRecord{
		Code:    code,
		GuildID: guildID,
		Uses:    uses,
	}
	c.Unlock()
}

// Epoch returns the purge generation of $guildID, read it before listing invites for Seed
func (c *InviteCache) Epoch(guildID string) uint64 {
	c.RLock()
	defer c.RUnlock()

	return c.epochs[guildID]
}

// Seed overwrites the records of $invites for $guildID unless the guild got purged
// since $epoch was read. Reports whether the invites were stored.
func (c *InviteCache) Seed(guildID string, epoch uint64, invites []*discordgo.Invite) bool {
	c.Lock()
	defer c.Unlock()

	if c.epochs[guildID] != epoch {
		return false
	}

	for _, invite := range invites {
		if invite == nil || invite.Code == "" {
			continue
		}
		c.storage[invite.Code] = &models.InviteRecord{
			Code:    invite.Code,
			GuildID: guildID,
			Uses:    invite.Uses,
		}
	}
	return true
}

// Remove drops $code, reports whether it was cached
func (c *InviteCache) Remove(code string) bool {
	c.Lock()
	_, ok := c.storage[code]
	delete(c.storage, code)
	c.Unlock()
	return ok
}

// Get returns a copy of the record for $code
func (c *InviteCache) Get(code string) (record models.InviteRecord, ok bool) {
	c.RLock()
	res, ok := c.storage[code]
	if ok {
		record = *res
	}
	c.RUnlock()
	return record, ok
}

// Guild returns copies of all records owned by $guildID keyed by code
func (c *InviteCache) Guild(guildID string) map[string]models.InviteRecord {
	result := make(map[string]models.InviteRecord)

	c.RLock()
	for code, record := range c.storage {
		if record.GuildID == guildID {
			result[code] = *record
		}
	}
	c.RUnlock()

	return result
}

// PurgeGuild drops every record owned by $guildID and returns how many were dropped
func (c *InviteCache) PurgeGuild(guildID string) (purged int) {
	c.Lock()
	for code, record := range c.storage {
		if record.GuildID == guildID {
			delete(c.storage, code)
			purged++
		}
	}
	c.epochs[guildID]++
	c.Unlock()
	return purged
}

// Advance increments the uses of $code by exactly one if the record is still cached,
// still owned by $guildID and its uses are below $fetchedUses.
// Returns the updated record and whether it got advanced.
func (c *InviteCache) Advance(code, guildID string, fetchedUses int) (record models.InviteRecord, ok bool) {
	c.Lock()
	defer c.Unlock()

	res, ok := c.storage[code]
	if !ok || res.GuildID != guildID || fetchedUses <= res.Uses {
		return record, false
	}

	res.Uses++
	return *res, true
}

// Len returns the number of cached invites
func (c *InviteCache) Len() int {
	c.RLock()
	defer c.RUnlock()

	return len(c.storage)
}

// GuildCount returns the number of distinct guilds with cached invites
func (c *InviteCache) GuildCount() int {
	guilds := make(map[string]struct{})

	c.RLock()
	for _, record := range c.storage {
		guilds[record.GuildID] = struct{}{}
	}
	c.RUnlock()

	return len(guilds)
}
