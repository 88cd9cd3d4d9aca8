package game

import (
	"math/rand"
	"sync"
	"time"
)

// CodeGenerator 密码生成器
// 进程内共享一个实例，由构造方显式注入，多个会话可能同时开局，因此加锁
type CodeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCodeGenerator 创建密码生成器
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededCodeGenerator 创建固定种子的生成器（测试用）
func NewSeededCodeGenerator(seed int64) *CodeGenerator {
	return &CodeGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NextCode 生成一条密码：length 个字符，每个独立均匀地取自 alphabet，允许重复
func (g *CodeGenerator) NextCode(length int, alphabet string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := make([]byte, length)
	for i := range code {
		code[i] = alphabet[g.rng.Intn(len(alphabet))]
	}
	return string(code)
}
