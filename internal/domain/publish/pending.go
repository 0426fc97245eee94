package publish

import (
	"sync"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
)

// pendingList is the mutex-guarded FIFO of posts awaiting broadcast
type pendingList struct {
	mu    sync.Mutex
	posts []*entities.NewsPost
}

func newPendingList() *pendingList {
	return &pendingList{}
}

func (l *pendingList) push(post *entities.NewsPost) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.posts = append(l.posts, post)
}

func (l *pendingList) peek() (*entities.NewsPost, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.posts) == 0 {
		return nil, false
	}
	return l.posts[0], true
}

func (l *pendingList) pop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.posts) > 0 {
		l.posts = l.posts[1:]
	}
}

func (l *pendingList) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.posts)
}
