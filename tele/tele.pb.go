// Messages of tele.proto in golang/protobuf v1 struct form.
// Keep field numbers in sync with tele.proto.

package tele

import (
	proto "github.com/golang/protobuf/proto"
)

type State int32

const (
	State_Invalid      State = 0
	State_Boot         State = 1
	State_Nominal      State = 2
	State_Disconnected State = 3
	State_Problem      State = 4
	State_Service      State = 5
)

var State_name = map[int32]string{
	0: "Invalid",
	1: "Boot",
	2: "Nominal",
	3: "Disconnected",
	4: "Problem",
	5: "Service",
}

var State_value = map[string]int32{
	"Invalid":      0,
	"Boot":         1,
	"Nominal":      2,
	"Disconnected": 3,
	"Problem":      4,
	"Service":      5,
}

func (x State) String() string {
	return proto.EnumName(State_name, int32(x))
}

type Telemetry struct {
	VmId                 int32                  `protobuf:"varint,1,opt,name=vm_id,json=vmId,proto3" json:"vm_id,omitempty"`
	Time                 int64                  `protobuf:"varint,2,opt,name=time,proto3" json:"time,omitempty"`
	Error                *Telemetry_Error       `protobuf:"bytes,3,opt,name=error,proto3" json:"error,omitempty"`
	Stat                 *Telemetry_Stat        `protobuf:"bytes,4,opt,name=stat,proto3" json:"stat,omitempty"`
	Transaction          *Telemetry_Transaction `protobuf:"bytes,5,opt,name=transaction,proto3" json:"transaction,omitempty"`
	Inventory            *Telemetry_Inventory   `protobuf:"bytes,6,opt,name=inventory,proto3" json:"inventory,omitempty"`
	AtService            bool                   `protobuf:"varint,7,opt,name=at_service,json=atService,proto3" json:"at_service,omitempty"`
	XXX_NoUnkeyedLiteral struct{}               `json:"-"`
	XXX_unrecognized     []byte                 `json:"-"`
	XXX_sizecache        int32                  `json:"-"`
}

func (m *Telemetry) Reset()         { *m = Telemetry{} }
func (m *Telemetry) String() string { return proto.CompactTextString(m) }
func (*Telemetry) ProtoMessage()    {}

type Telemetry_Error struct {
	Message              string   `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Telemetry_Error) Reset()         { *m = Telemetry_Error{} }
func (m *Telemetry_Error) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Error) ProtoMessage()    {}

type Telemetry_Stat struct {
	CoinAccepted         map[uint32]uint32 `protobuf:"bytes,1,rep,name=coin_accepted,json=coinAccepted,proto3" json:"coin_accepted,omitempty" protobuf_key:"varint,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`
	CoinRejected         uint32            `protobuf:"varint,2,opt,name=coin_rejected,json=coinRejected,proto3" json:"coin_rejected,omitempty"`
	LastActivity         int64             `protobuf:"varint,3,opt,name=last_activity,json=lastActivity,proto3" json:"last_activity,omitempty"`
	XXX_NoUnkeyedLiteral struct{}          `json:"-"`
	XXX_unrecognized     []byte            `json:"-"`
	XXX_sizecache        int32             `json:"-"`
}

func (m *Telemetry_Stat) Reset()         { *m = Telemetry_Stat{} }
func (m *Telemetry_Stat) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Stat) ProtoMessage()    {}

type Telemetry_Transaction struct {
	Id                   string   `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Position             int32    `protobuf:"varint,2,opt,name=position,proto3" json:"position,omitempty"`
	Product              string   `protobuf:"bytes,3,opt,name=product,proto3" json:"product,omitempty"`
	Price                uint32   `protobuf:"varint,4,opt,name=price,proto3" json:"price,omitempty"`
	Change               uint32   `protobuf:"varint,5,opt,name=change,proto3" json:"change,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Telemetry_Transaction) Reset()         { *m = Telemetry_Transaction{} }
func (m *Telemetry_Transaction) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Transaction) ProtoMessage()    {}

type Telemetry_Product struct {
	Name                 string   `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Price                uint32   `protobuf:"varint,2,opt,name=price,proto3" json:"price,omitempty"`
	Available            int32    `protobuf:"varint,3,opt,name=available,proto3" json:"available,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Telemetry_Product) Reset()         { *m = Telemetry_Product{} }
func (m *Telemetry_Product) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Product) ProtoMessage()    {}

type Telemetry_Inventory struct {
	Products             []*Telemetry_Product `protobuf:"bytes,1,rep,name=products,proto3" json:"products,omitempty"`
	Balance              uint32               `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
	XXX_NoUnkeyedLiteral struct{}             `json:"-"`
	XXX_unrecognized     []byte               `json:"-"`
	XXX_sizecache        int32                `json:"-"`
}

func (m *Telemetry_Inventory) Reset()         { *m = Telemetry_Inventory{} }
func (m *Telemetry_Inventory) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Inventory) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("tele.State", State_name, State_value)
	proto.RegisterType((*Telemetry)(nil), "tele.Telemetry")
	proto.RegisterType((*Telemetry_Error)(nil), "tele.Telemetry.Error")
	proto.RegisterType((*Telemetry_Stat)(nil), "tele.Telemetry.Stat")
	proto.RegisterMapType((map[uint32]uint32)(nil), "tele.Telemetry.Stat.CoinAcceptedEntry")
	proto.RegisterType((*Telemetry_Transaction)(nil), "tele.Telemetry.Transaction")
	proto.RegisterType((*Telemetry_Product)(nil), "tele.Telemetry.Product")
	proto.RegisterType((*Telemetry_Inventory)(nil), "tele.Telemetry.Inventory")
}
