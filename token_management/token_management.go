package token_management

import (
	"fmt"
	"sync"

	"github.com/docuai/docuai/constants/lipgloss"
	"github.com/docuai/docuai/token_management/contracts"
)

// tokenManager accumulates token usage across all generation calls in a
// run. Workers report usage concurrently, so counters are mutex-guarded.
type tokenManager struct {
	mu              sync.Mutex
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// NewTokenManager creates a new token manager.
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates the token count for the run.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

// EstimateTokens gives a rough token count for providers that report no
// usage. Four characters per token is the usual approximation.
func (tm *tokenManager) EstimateTokens(text string) int {
	return len(text) / 4
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

func (tm *tokenManager) DisplayTokens(chatProviderName string, chatModel string) {
	total, input, output := tm.GetCurrentTokenUsage()
	tokenInfo := fmt.Sprintf("Token Used: %d (Input: %d, Output: %d) - Provider: %s - Model: %s", total, input, output, chatProviderName, chatModel)
	tokenBox := lipgloss.BoxStyle.Render(tokenInfo)
	fmt.Println(tokenBox)
}

func (tm *tokenManager) ClearToken() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
