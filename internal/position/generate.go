package position

// Generate returns a new key strictly between left and right. Either boundary may be nil,
// meaning unbounded on that side; when both are given left must sort before right.
//
// The walk compares the boundaries one depth at a time:
//   - equal digits are copied and the walk continues, still bounded on both sides;
//   - digits whose counters leave no integer between them copy the left digit and descend,
//     after which the right boundary no longer constrains the result;
//   - otherwise the left counter is bumped by one, tagged with hash, and the walk stops.
//
// A missing left digit is treated as {0, hash} (never above the right digit) and a missing
// right digit as the maximum digit, so the walk always finds room eventually. Right must not
// end in a digit with a zero counter; generated and decoded keys never do.
func Generate(hash uint32, left, right Key) Key {
	result := make(Key, 0, max(len(left), len(right))+1)
	rightBound := right != nil

	for depth := 0; ; depth++ {
		y := maxDigit
		if rightBound && depth < len(right) {
			y = right[depth]
		}

		var x Digit
		if depth < len(left) {
			x = left[depth]
		} else {
			x = Digit{Seq: 0, Hash: hash}
			switch {
			case rightBound && depth == len(right)-1 && x.Compare(y) >= 0:
				// Below a final {0, h} digit only a smaller hash leaves room.
				x = Digit{Seq: 0, Hash: y.Hash - 1}
			case x.Compare(y) > 0:
				x = y
			}
		}

		switch {
		case x == y:
			result = append(result, x)
		case uint64(x.Seq)+1 >= uint64(y.Seq):
			result = append(result, x)
			rightBound = false
		default:
			return append(result, Digit{Seq: x.Seq + 1, Hash: hash})
		}
	}
}
