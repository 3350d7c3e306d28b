package landmarks

// attributeSpaceByte reports whether b belongs to attribute_spaces: the
// policy's ordinary whitespace plus "/" (a "/" between attributes behaves
// like whitespace; a "/" inside an unquoted value does not reach here,
// since unquoted-value scanning uses attribute_value_end instead).
func attributeSpaceByte(policy Policy, b byte) bool {
	return policy.IsSpace(b) || b == '/'
}

// attributeNameEndByte reports whether b terminates an attribute (or
// element) name.
func attributeNameEndByte(policy Policy, b byte) bool {
	return attributeSpaceByte(policy, b) || b == '>' || b == '='
}

// attributeValueEndByte reports whether b terminates an unquoted
// attribute value.
func attributeValueEndByte(policy Policy, b byte) bool {
	return policy.IsSpace(b) || b == '>'
}

// findElementNameEnd scans from pos for the first byte in
// element_name_end = attribute_spaces ∪ {'>'}, returning NPOS if the
// source ends first (a truncated name).
func findElementNameEnd(source string, policy Policy, pos Position) Position {
	n := Position(len(source))
	for pos < n {
		b := source[pos]
		if attributeSpaceByte(policy, b) || b == '>' {
			return pos
		}
		pos++
	}
	return NPOS
}

// scanAttributes scans zero or more attributes starting at pos (just past
// a start- or end-tag name), invoking emit for each one found in source
// order. It returns the position of the byte after the tag's closing ">",
// and whether a self-closing "/" marker was seen immediately before it.
// NPOS is returned when the source ends before a closing ">" is found.
func scanAttributes(source string, policy Policy, pos Position, emit func(Attribute)) (end Position, selfClosing bool) {
	n := Position(len(source))

	for {
		// 1. Skip attribute-spaces.
		for pos < n && attributeSpaceByte(policy, source[pos]) {
			pos++
		}
		if pos >= n {
			return NPOS, false
		}

		// 2. Close marker, with the backtrack-one-byte self-closing rule:
		// attribute-spaces above may have just consumed a "/" immediately
		// before this ">", which is how the marker is detected.
		if source[pos] == '>' {
			marker := pos > 0 && source[pos-1] == '/'
			return pos + 1, marker
		}

		// 3. Scan the attribute name.
		nameStart := pos
		for pos < n && !attributeNameEndByte(policy, source[pos]) {
			pos++
		}
		nameEnd := pos
		attr := Attribute{
			Name:  NewRange(nameStart, nameEnd),
			Value: NewRange(nameEnd, nameEnd),
		}

		if pos >= n {
			attr.Value = NewRange(nameEnd, NPOS)
			attr.All = NewRange(nameStart, NPOS)
			emit(attr)
			return NPOS, false
		}

		// 4. Already at a close marker: value-less attribute.
		if source[pos] == '>' {
			marker := pos > 0 && source[pos-1] == '/'
			attr.All = NewRange(nameStart, pos)
			emit(attr)
			return pos + 1, marker
		}

		// A "/" after a name is ordinary attribute-space; re-enter the
		// loop so step 1 absorbs it (step 2 then reports it as the
		// self-closing marker if ">" follows directly).
		if source[pos] == '/' {
			attr.All = NewRange(nameStart, pos)
			emit(attr)
			continue
		}

		// 5. Skip ordinary whitespace; check for "=".
		beforeSpaces := pos
		for pos < n && policy.IsSpace(source[pos]) {
			pos++
		}
		if pos >= n || source[pos] != '=' {
			pos = beforeSpaces
			attr.All = NewRange(nameStart, pos)
			emit(attr)
			continue
		}

		// 6. Consume "=" and following spaces, then scan the value.
		pos++
		for pos < n && policy.IsSpace(source[pos]) {
			pos++
		}
		if pos >= n {
			attr.Value = NewRange(nameEnd, NPOS)
			attr.All = NewRange(nameStart, NPOS)
			emit(attr)
			return NPOS, false
		}

		quote := source[pos]
		if quote == '"' || quote == '\'' {
			pos++
			valueStart := pos
			for pos < n && source[pos] != quote {
				pos++
			}
			if pos >= n {
				attr.Value = NewRange(valueStart, NPOS)
				attr.All = NewRange(nameStart, NPOS)
				emit(attr)
				return NPOS, false
			}
			attr.Value = NewRange(valueStart, pos)
			pos++ // past the closing quote
			attr.All = NewRange(nameStart, pos)
			emit(attr)
			continue
		}

		// Unquoted value: runs until attribute_value_end. A "/" is part
		// of the value here, not a terminator.
		valueStart := pos
		for pos < n && !attributeValueEndByte(policy, source[pos]) {
			pos++
		}
		attr.Value = NewRange(valueStart, pos)
		attr.All = NewRange(nameStart, pos)
		emit(attr)

		if pos >= n {
			return NPOS, false
		}
		if source[pos] == '>' {
			return pos + 1, false
		}
		// Otherwise pos sits on whitespace; loop back to step 1.
	}
}
