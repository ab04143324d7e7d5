package mcpserver

// UsageGuide explains the LifeOS session model to LLM consumers.
const UsageGuide = `# LifeOS Usage Guide

The server drives one LifeOS session. A session has a global shell (theme,
navigation, voice panel) and exactly one mounted page.

## Rules

1. **One page at a time.** Page tools open their page first. Navigating away
   discards that page's state and cancels anything still pending on it
   (chat replies, dictation, vault unlock). Coming back starts from the seed.
2. **Delayed effects.** ` + "`" + `send_message` + "`" + ` and ` + "`" + `unlock_vault` + "`" + ` return at once; the reply
   or the unlock lands a moment later. Call ` + "`" + `get_view` + "`" + ` to observe it.
3. **Unknown ids are ignored.** Toggling a task or selecting a category that
   does not exist leaves the page unchanged.
4. **Nothing is saved.** State lives only as long as the server process.

## Pages

| Path | Page | Tools |
|---|---|---|
| / | Dashboard | get_view |
| /brain | Smart Brain notes | filter_notes |
| /chat | ChatHub | send_message |
| /create | CreateSpace | get_view |
| /learn | SkillZone | get_view |
| /planner | Planner | toggle_task |
| /vault | Privacy Vault | unlock_vault, lock_vault |
| /family | Family Hub | get_view |

## Vault states

` + "`" + `locked` + "`" + ` → ` + "`" + `unlocking` + "`" + ` → ` + "`" + `unlocked` + "`" + `. Locking while unlocking cancels the transition.
`
