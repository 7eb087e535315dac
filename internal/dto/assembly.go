package dto

import (
	"time"

	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/services"
	"github.com/vigiamar/operaciones-api/internal/utils"
)

// SiteRefDTO is the site context embedded in assembly responses
type SiteRefDTO struct {
	ID      *uint64 `json:"id_centro"`
	Nombre  *string `json:"nombre"`
	Cliente *string `json:"cliente"`
}

// TechnicianRefDTO is the technician context embedded in assembly responses
type TechnicianRefDTO struct {
	ID     *uint64 `json:"id"`
	Nombre *string `json:"nombre"`
	Rol    *string `json:"rol"`
}

// AssemblyListItemDTO represents an assembly in the listing response,
// including the derived fields computed per item
type AssemblyListItemDTO struct {
	ID                uint64                `json:"id_armado"`
	CentroID          uint64                `json:"centro_id"`
	Centro            SiteRefDTO            `json:"centro"`
	TecnicoID         *uint64               `json:"tecnico_id"`
	Tecnico           TechnicianRefDTO      `json:"tecnico"`
	Estado            models.AssemblyStatus `json:"estado"`
	FechaAsignacion   string                `json:"fecha_asignacion"`
	FechaInicio       string                `json:"fecha_inicio"`
	FechaCierre       *string               `json:"fecha_cierre"`
	Observacion       string                `json:"observacion"`
	TotalCajas        int                   `json:"total_cajas"`
	TecnicosHistorial []string              `json:"tecnicos_historial"`
}

// ParticipationDTO represents a participation in API responses
type ParticipationDTO struct {
	ID            uint64  `json:"id_participacion"`
	ArmadoID      uint64  `json:"armado_id"`
	TecnicoID     uint64  `json:"tecnico_id"`
	TecnicoNombre *string `json:"tecnico_nombre"`
	FechaInicio   string  `json:"fecha_inicio"`
	FechaFin      *string `json:"fecha_fin"`
	Nota          string  `json:"nota"`
}

// MaterialDTO represents a material in API responses
type MaterialDTO struct {
	ID                uint64  `json:"id_material"`
	Nombre            string  `json:"nombre"`
	Cantidad          float64 `json:"cantidad"`
	Caja              string  `json:"caja"`
	CajaTecnicoID     *uint64 `json:"caja_tecnico_id"`
	CajaTecnicoNombre *string `json:"caja_tecnico_nombre"`
}

// MovementDTO represents a ledger entry in assembly-scoped responses
type MovementDTO struct {
	ID            uint64              `json:"id_movimiento"`
	Tipo          models.MovementKind `json:"tipo"`
	ItemID        uint64              `json:"item_id"`
	NombreItem    string              `json:"nombre_item"`
	Caja          string              `json:"caja"`
	Cantidad      float64             `json:"cantidad"`
	TecnicoID     *uint64             `json:"tecnico_id"`
	TecnicoNombre *string             `json:"tecnico_nombre"`
	Fecha         string              `json:"fecha"`
}

// MovementFeedItemDTO represents a ledger entry in the global feed, with the
// owning assembly's site resolved when it still exists
type MovementFeedItemDTO struct {
	MovementDTO
	ArmadoID     uint64  `json:"armado_id"`
	CentroNombre *string `json:"centro_nombre"`
}

// MovementFeedResponse is the paginated global feed
type MovementFeedResponse struct {
	Items []MovementFeedItemDTO `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// EquipmentDTO represents an equipment row in API responses
type EquipmentDTO struct {
	ID            uint64  `json:"id_equipo"`
	CentroID      uint64  `json:"centro_id"`
	Nombre        string  `json:"nombre"`
	IP            string  `json:"ip"`
	Observacion   string  `json:"observacion"`
	Codigo        string  `json:"codigo"`
	NumeroSerie   string  `json:"numero_serie"`
	Estado        string  `json:"estado"`
	Caja          string  `json:"caja"`
	CajaTecnicoID *uint64 `json:"caja_tecnico_id"`
}

// SiteDTO represents a site in lookup responses
type SiteDTO struct {
	ID        uint64  `json:"id_centro"`
	Nombre    string  `json:"nombre"`
	Ubicacion string  `json:"ubicacion"`
	Estado    string  `json:"estado"`
	Cliente   *string `json:"cliente"`
}

// Conversion functions

// ToAssemblyListItemDTO converts a derived listing item to its response shape
func ToAssemblyListItemDTO(item services.AssemblyListItem) AssemblyListItemDTO {
	assembly := item.Assembly

	out := AssemblyListItemDTO{
		ID:                assembly.ID,
		CentroID:          assembly.CentroID,
		TecnicoID:         assembly.TecnicoID,
		Estado:            assembly.Estado,
		FechaAsignacion:   assembly.FechaAsignacion.Format(utils.DateLayout),
		FechaInicio:       item.FechaInicioReal.Format(utils.DateLayout),
		FechaCierre:       utils.FormatDate(assembly.FechaCierre),
		Observacion:       assembly.Observacion,
		TotalCajas:        item.TotalCajas,
		TecnicosHistorial: item.TecnicosHistorial,
	}

	if assembly.Centro.ID != 0 {
		out.Centro = SiteRefDTO{
			ID:     &assembly.Centro.ID,
			Nombre: &assembly.Centro.Nombre,
		}
		if assembly.Centro.Cliente.ID != 0 {
			out.Centro.Cliente = &assembly.Centro.Cliente.Nombre
		}
	}
	if assembly.Tecnico != nil {
		out.Tecnico = TechnicianRefDTO{
			ID:     &assembly.Tecnico.ID,
			Nombre: &assembly.Tecnico.Name,
			Rol:    &assembly.Tecnico.Rol,
		}
	}

	return out
}

// ToParticipationDTO converts a Participation model to ParticipationDTO
func ToParticipationDTO(p models.Participation) ParticipationDTO {
	out := ParticipationDTO{
		ID:          p.ID,
		ArmadoID:    p.ArmadoID,
		TecnicoID:   p.TecnicoID,
		FechaInicio: p.FechaInicio.Format(utils.DateLayout),
		FechaFin:    utils.FormatDate(p.FechaFin),
		Nota:        p.Nota,
	}
	if p.Tecnico != nil {
		out.TecnicoNombre = &p.Tecnico.Name
	}
	return out
}

// ToMaterialDTO converts a Material model to MaterialDTO
func ToMaterialDTO(m models.Material) MaterialDTO {
	out := MaterialDTO{
		ID:            m.ID,
		Nombre:        m.Nombre,
		Cantidad:      m.Cantidad,
		Caja:          m.Caja,
		CajaTecnicoID: m.CajaTecnicoID,
	}
	if m.CajaTecnico != nil {
		out.CajaTecnicoNombre = &m.CajaTecnico.Name
	}
	return out
}

// ToMovementDTO converts a Movement model to MovementDTO
func ToMovementDTO(m models.Movement) MovementDTO {
	out := MovementDTO{
		ID:         m.ID,
		Tipo:       m.Tipo,
		ItemID:     m.ItemID,
		NombreItem: m.NombreItem,
		Caja:       m.Caja,
		Cantidad:   m.Cantidad,
		TecnicoID:  m.TecnicoID,
		Fecha:      m.Fecha.Format(time.RFC3339),
	}
	if m.Tecnico != nil {
		out.TecnicoNombre = &m.Tecnico.Name
	}
	return out
}

// ToMovementFeedItemDTO converts a Movement model to its global-feed shape.
// Assemblies deleted after the fact leave CentroNombre null.
func ToMovementFeedItemDTO(m models.Movement) MovementFeedItemDTO {
	out := MovementFeedItemDTO{
		MovementDTO: ToMovementDTO(m),
		ArmadoID:    m.ArmadoID,
	}
	if m.Armado != nil && m.Armado.Centro.ID != 0 {
		out.CentroNombre = &m.Armado.Centro.Nombre
	}
	return out
}

// ToEquipmentDTO converts an Equipment model to EquipmentDTO
func ToEquipmentDTO(e models.Equipment) EquipmentDTO {
	return EquipmentDTO{
		ID:            e.ID,
		CentroID:      e.CentroID,
		Nombre:        e.Nombre,
		IP:            e.IP,
		Observacion:   e.Observacion,
		Codigo:        e.Codigo,
		NumeroSerie:   e.NumeroSerie,
		Estado:        e.Estado,
		Caja:          e.Caja,
		CajaTecnicoID: e.CajaTecnicoID,
	}
}

// ToSiteDTO converts a Site model to SiteDTO
func ToSiteDTO(s models.Site) SiteDTO {
	out := SiteDTO{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Ubicacion: s.Ubicacion,
		Estado:    s.Estado,
	}
	if s.Cliente.ID != 0 {
		out.Cliente = &s.Cliente.Nombre
	}
	return out
}
