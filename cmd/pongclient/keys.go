package main

// parseKeys turns raw terminal bytes into input names the server accepts.
// quit is set when the user asked to leave.
func parseKeys(buf []byte) (inputs []string, quit bool) {
	for i := 0; i < len(buf); i++ {
		switch b := buf[i]; b {
		case 'q', 'Q', 3: // 3 is ctrl+c in raw mode
			return inputs, true
		case 'w', 'W', 'k':
			inputs = append(inputs, "up")
		case 's', 'S', 'j':
			inputs = append(inputs, "down")
		case ' ':
			inputs = append(inputs, "space")
		case 'p', 'P':
			inputs = append(inputs, "pause")
		case '\r', '\n':
			inputs = append(inputs, "start")
		case 0x1b:
			// Arrow keys arrive as ESC [ A and ESC [ B. A lone ESC quits.
			if i+2 < len(buf) && buf[i+1] == '[' {
				switch buf[i+2] {
				case 'A':
					inputs = append(inputs, "up")
				case 'B':
					inputs = append(inputs, "down")
				}
				i += 2
				continue
			}
			return inputs, true
		}
	}
	return inputs, false
}

func isMovement(input string) bool {
	return input == "up" || input == "down"
}
