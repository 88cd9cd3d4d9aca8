package game

// Evaluate 比对猜测与密码，返回黑白钉数量
//
// 两趟扫描：第一趟统计位置和颜色都正确的黑钉，并把两侧对应位置标记为已消耗；
// 第二趟对每个未消耗的猜测位置，从左到右找第一个未消耗的同色密码位置计一个白钉。
// 每个位置最多贡献一钉，重复颜色不会被重复计数，black+white 恒 ≤ 长度。
// 纯函数，可被多个会话并发调用。
func Evaluate(secret, guess string) (black, white int) {
	codeUsed := make([]bool, len(secret))
	guessUsed := make([]bool, len(guess))

	for i := 0; i < len(guess); i++ {
		if guess[i] == secret[i] {
			black++
			codeUsed[i] = true
			guessUsed[i] = true
		}
	}

	for i := 0; i < len(guess); i++ {
		if guessUsed[i] {
			continue
		}
		for j := 0; j < len(secret); j++ {
			if !codeUsed[j] && guess[i] == secret[j] {
				white++
				codeUsed[j] = true
				break
			}
		}
	}

	return black, white
}
