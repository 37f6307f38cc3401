package registry

import "github.com/saboracaiteria/br.canaa/pkg/protocol"

// relayVoice forwards WebRTC signaling to one peer in the sender's room.
// Everything but targetId is passed through, plus the sender as fromId.
func (r *Registry) relayVoice(connID string, msg protocol.VoiceSignal) []delivery {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	binding, ok := r.bindings[connID]
	if !ok || msg.TargetID == "" || msg.TargetID == binding.PlayerID {
		return nil
	}
	rm, ok := r.rooms[binding.Code]
	if !ok {
		return nil
	}
	targetConn, ok := rm.members[msg.TargetID]
	if !ok {
		return nil
	}
	target, ok := r.connections[targetConn]
	if !ok {
		return nil
	}

	fields := make(map[string]interface{}, len(msg.Fields)+1)
	for key, value := range msg.Fields {
		if key == "targetId" {
			continue
		}
		fields[key] = value
	}
	fields["fromId"] = binding.PlayerID

	return []delivery{{target, protocol.VoiceRelay{Event: msg.Event, Fields: fields}}}
}

func (r *Registry) relaySpeaking(connID string, msg protocol.VoiceSpeaking) []delivery {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	binding, ok := r.bindings[connID]
	if !ok {
		return nil
	}
	rm, ok := r.rooms[binding.Code]
	if !ok {
		return nil
	}

	event := protocol.VoiceSpeakingRelay{PlayerID: binding.PlayerID, Speaking: msg.Speaking}
	var out []delivery
	for playerID, memberConn := range rm.members {
		if playerID == binding.PlayerID {
			continue
		}
		if conn, ok := r.connections[memberConn]; ok {
			out = append(out, delivery{conn, event})
		}
	}
	return out
}
