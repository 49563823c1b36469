package mc

import (
	"encoding/json"
	"time"

	"github.com/Tnze/go-mc/chat"
)

const (
	ClientBoundResponsePacketID int32 = 0x00
	ServerBoundRequestPacketID  int32 = 0x00
	ServerBoundPingPacketID     int32 = 0x01
	ClientBoundPongPacketID     int32 = 0x01
)

// StatusPayload is what the server tells about itself in a status response.
type StatusPayload struct {
	VersionName        string
	Protocol           int32
	MaxPlayers         uint32
	OnlinePlayers      uint32
	Sample             []PlayerSample
	Description        string
	Favicon            string
	EnforcesSecureChat bool
}

type PlayerSample struct {
	Name string
	ID   string
}

func (p StatusPayload) ResponseJSON() ResponseJSON {
	var sample []PlayerSampleJSON
	for _, player := range p.Sample {
		sample = append(sample, PlayerSampleJSON{
			Name: player.Name,
			ID:   player.ID,
		})
	}
	return ResponseJSON{
		Version: VersionJSON{
			Name:     p.VersionName,
			Protocol: p.Protocol,
		},
		Players: PlayersJSON{
			Max:    p.MaxPlayers,
			Online: p.OnlinePlayers,
			Sample: sample,
		},
		Description:        chat.Text(p.Description),
		Favicon:            p.Favicon,
		EnforcesSecureChat: p.EnforcesSecureChat,
	}
}

// Marshal builds the status response packet.
func (p StatusPayload) Marshal() (Packet, error) {
	text, err := json.Marshal(p.ResponseJSON())
	if err != nil {
		return Packet{}, err
	}
	return ClientBoundResponse{
		JSONResponse: String(text),
	}.Marshal(), nil
}

type ResponseJSON struct {
	Version            VersionJSON  `json:"version"`
	Players            PlayersJSON  `json:"players"`
	Description        chat.Message `json:"description"`
	Favicon            string       `json:"favicon,omitempty"`
	EnforcesSecureChat bool         `json:"enforcesSecureChat"`
}

// MarshalJSON always writes description.text, go-mc drops it when empty.
func (r ResponseJSON) MarshalJSON() ([]byte, error) {
	type response ResponseJSON
	description, err := json.Marshal(r.Description)
	if err != nil {
		return nil, err
	}
	if r.Description.Text == "" {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(description, &fields); err != nil {
			return nil, err
		}
		fields["text"] = json.RawMessage(`""`)
		if description, err = json.Marshal(fields); err != nil {
			return nil, err
		}
	}
	return json.Marshal(struct {
		response
		Description json.RawMessage `json:"description"`
	}{
		response:    response(r),
		Description: description,
	})
}

type VersionJSON struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type PlayersJSON struct {
	Max    uint32             `json:"max"`
	Online uint32             `json:"online"`
	Sample []PlayerSampleJSON `json:"sample,omitempty"`
}

type PlayerSampleJSON struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type ClientBoundResponse struct {
	JSONResponse String
}

func (pk ClientBoundResponse) Marshal() Packet {
	return MarshalPacket(
		ClientBoundResponsePacketID,
		pk.JSONResponse,
	)
}

func UnmarshalClientBoundResponse(packet Packet) (ClientBoundResponse, error) {
	var pk ClientBoundResponse

	if packet.ID != ClientBoundResponsePacketID {
		return pk, ErrInvalidPacketID
	}

	if err := packet.Scan(
		&pk.JSONResponse,
	); err != nil {
		return pk, err
	}

	return pk, nil
}

// ParseJSON decodes the status document carried by the response.
func (pk ClientBoundResponse) ParseJSON() (ResponseJSON, error) {
	var resp ResponseJSON
	err := json.Unmarshal([]byte(pk.JSONResponse), &resp)
	return resp, err
}

type ServerBoundRequest struct{}

func (pk ServerBoundRequest) Marshal() Packet {
	return MarshalPacket(
		ServerBoundRequestPacketID,
	)
}

func (pk ServerBoundRequest) MarshalPacket() Packet {
	return pk.Marshal()
}

func UnmarshalServerBoundRequest(packet Packet) (ServerBoundRequest, error) {
	if packet.ID != ServerBoundRequestPacketID {
		return ServerBoundRequest{}, ErrInvalidPacketID
	}
	return ServerBoundRequest{}, nil
}

func NewServerBoundPing() ServerBoundPing {
	return ServerBoundPing{
		Payload: Long(time.Now().UnixMilli()),
	}
}

type ServerBoundPing struct {
	Payload Long
}

func (pk ServerBoundPing) Marshal() Packet {
	return MarshalPacket(
		ServerBoundPingPacketID,
		pk.Payload,
	)
}

func (pk ServerBoundPing) MarshalPacket() Packet {
	return pk.Marshal()
}

func UnmarshalServerBoundPing(packet Packet) (ServerBoundPing, error) {
	var pk ServerBoundPing

	if packet.ID != ServerBoundPingPacketID {
		return pk, ErrInvalidPacketID
	}

	err := packet.Scan(&pk.Payload)
	return pk, err
}

// ClientBoundPong echoes the payload of a ServerBoundPing.
type ClientBoundPong struct {
	Payload Long
}

func (pk ClientBoundPong) Marshal() Packet {
	return MarshalPacket(
		ClientBoundPongPacketID,
		pk.Payload,
	)
}

func UnmarshalClientBoundPong(packet Packet) (ClientBoundPong, error) {
	var pk ClientBoundPong

	if packet.ID != ClientBoundPongPacketID {
		return pk, ErrInvalidPacketID
	}

	err := packet.Scan(&pk.Payload)
	return pk, err
}
